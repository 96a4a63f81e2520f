package fat1

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NFTokenAmount is the amount of an input or output of a FAT-1 transaction:
// an ordered, non-empty list of NFTokenIDs and NFTokenIDRanges. It encodes
// in the order given, for example [10,{"min":12,"max":20}].
type NFTokenAmount []NFTokensSetter

// NewNFTokenAmount returns the NFTokenAmount of ids after validating it.
func NewNFTokenAmount(ids ...NFTokensSetter) (NFTokenAmount, error) {
	amount := NFTokenAmount(ids)
	if err := amount.Valid(); err != nil {
		return nil, err
	}
	return amount, nil
}

// Valid returns an error if a is empty, if a range in a has Min > Max, or if
// any NFTokenID appears more than once.
func (a NFTokenAmount) Valid() error {
	if len(a) == 0 {
		return fmt.Errorf("%T: empty", a)
	}
	for _, ids := range a {
		if ids == nil {
			return fmt.Errorf("%T: nil element", a)
		}
		if err := ids.Valid(); err != nil {
			return err
		}
	}
	_, err := a.NFTokens()
	return err
}

// Len returns the total number of NFTokenIDs in a.
func (a NFTokenAmount) Len() int {
	var l int
	for _, ids := range a {
		l += ids.Len()
	}
	return l
}

// NFTokens returns the set of all NFTokenIDs in a.
func (a NFTokenAmount) NFTokens() (NFTokens, error) {
	return NewNFTokens(a...)
}

func (a NFTokenAmount) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return nil, fmt.Errorf("%T: empty", a)
	}
	return json.Marshal([]NFTokensSetter(a))
}

func (a NFTokenAmount) String() string {
	if len(a) == 0 {
		return "[]"
	}
	data, _ := a.MarshalJSON()
	return string(data)
}

func (a *NFTokenAmount) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("%T: %w", a, err)
	}
	amount := make(NFTokenAmount, 0, len(elems))
	for _, data := range elems {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			var idRange NFTokenIDRange
			if err := idRange.UnmarshalJSON(data); err != nil {
				return fmt.Errorf("%T: %w", a, err)
			}
			amount = append(amount, idRange)
			continue
		}
		var id NFTokenID
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("%T: %w", a, err)
		}
		amount = append(amount, id)
	}
	if err := amount.Valid(); err != nil {
		return fmt.Errorf("%T: %w", a, err)
	}
	*a = amount
	return nil
}
