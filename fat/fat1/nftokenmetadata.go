package fat1

import (
	"encoding/json"
	"fmt"
)

// NFTokenMetadata assigns Metadata to the NFTokenIDs of Tokens. It may only
// appear in a coinbase transaction that mints those NFTokenIDs.
type NFTokenMetadata struct {
	Tokens   NFTokenAmount   `json:"ids"`
	Metadata json.RawMessage `json:"metadata"`
}

// NFTokenMetadataList is the "tokenmetadata" of a coinbase transaction, in
// the order it was added.
type NFTokenMetadataList []NFTokenMetadata

// NFTokens returns the union of all NFTokenIDs in l. An NFTokenID assigned
// metadata more than once is an error.
func (l NFTokenMetadataList) NFTokens() (NFTokens, error) {
	allTkns := make(NFTokens)
	for _, tknM := range l {
		tkns, err := tknM.Tokens.NFTokens()
		if err != nil {
			return nil, err
		}
		if err := allTkns.Append(tkns); err != nil {
			return nil, err
		}
	}
	return allTkns, nil
}

// IsSubsetOf returns an error if l assigns metadata to an NFTokenID not in
// tkns.
func (l NFTokenMetadataList) IsSubsetOf(tkns NFTokens) error {
	mTkns, err := l.NFTokens()
	if err != nil {
		return err
	}
	return tkns.ContainsAll(mTkns)
}

func (l *NFTokenMetadataList) UnmarshalJSON(data []byte) error {
	var tknMs []struct {
		Tokens   json.RawMessage `json:"ids"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &tknMs); err != nil {
		return fmt.Errorf("%T: %w", l, err)
	}
	list := make(NFTokenMetadataList, len(tknMs))
	for i, tknM := range tknMs {
		if len(tknM.Tokens) == 0 {
			return fmt.Errorf(`%T: missing required field "ids"`, l)
		}
		if len(tknM.Metadata) == 0 {
			return fmt.Errorf(`%T: missing required field "metadata"`, l)
		}
		if err := list[i].Tokens.UnmarshalJSON(tknM.Tokens); err != nil {
			return fmt.Errorf("%T: %w", l, err)
		}
		list[i].Metadata = tknM.Metadata
	}
	if _, err := list.NFTokens(); err != nil {
		return fmt.Errorf("%T: %w", l, err)
	}
	*l = list
	return nil
}
