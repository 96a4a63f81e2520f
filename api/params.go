// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package api

import (
	"strings"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
)

// Params are validated by the Client before they are sent to fatd.
type Params interface {
	IsValid() error
}

// ParamsToken scopes a request to a single token chain, identified either by
// its chain ID or by its token ID and issuer identity chain ID.
type ParamsToken struct {
	ChainID       *factom.Bytes32 `json:"chainid,omitempty"`
	TokenID       string          `json:"tokenid,omitempty"`
	IssuerChainID *factom.Bytes32 `json:"issuerid,omitempty"`

	IncludePending bool `json:"includepending,omitempty"`
}

// NewParamsToken parses the token chain identifiers. If chainID is not empty
// it is used alone and tokenID and issuerID are ignored. Otherwise both
// tokenID and issuerID are required.
func NewParamsToken(chainID, tokenID, issuerID string) (ParamsToken, error) {
	if len(chainID) > 0 {
		id, err := fat.ParseChainID(chainID)
		if err != nil {
			return ParamsToken{}, err
		}
		return ParamsToken{ChainID: &id}, nil
	}
	if len(tokenID) == 0 || len(issuerID) == 0 {
		return ParamsToken{}, fat.NewError(fat.MissingRequiredParameter,
			"requires either chain id or token id and issuer id")
	}
	id, err := fat.ParseIssuerID(issuerID)
	if err != nil {
		return ParamsToken{}, err
	}
	return ParamsToken{TokenID: tokenID, IssuerChainID: &id}, nil
}

func (p ParamsToken) IsValid() error {
	if p.ChainID != nil {
		if len(p.TokenID) > 0 || p.IssuerChainID != nil {
			return fat.NewError(fat.MissingRequiredParameter,
				`required: exactly one of "chainid" or both "tokenid" and "issuerid"`)
		}
		return nil
	}
	if len(p.TokenID) > 0 && p.IssuerChainID != nil {
		return nil
	}
	return fat.NewError(fat.MissingRequiredParameter,
		`required: either "chainid" or both "tokenid" and "issuerid"`)
}

// ValidChainID returns the token chain ID, computing it from the token ID
// and issuer chain ID if necessary. p must be valid.
func (p ParamsToken) ValidChainID() factom.Bytes32 {
	if p.ChainID != nil {
		return *p.ChainID
	}
	return fat.ChainID(p.TokenID, *p.IssuerChainID)
}

type ParamsPagination struct {
	Page  *uint64 `json:"page,omitempty"`
	Limit uint64  `json:"limit,omitempty"`
	Order string  `json:"order,omitempty"`
}

func (p *ParamsPagination) IsValid() error {
	if p.Page != nil && *p.Page == 0 {
		return fat.NewError(fat.InvalidParameter,
			`"page" must be greater than 0`)
	}
	p.Order = strings.ToLower(p.Order)
	switch p.Order {
	case "", "asc", "desc":
	default:
		return fat.NewError(fat.InvalidParameter,
			`"order" value must be either "asc" or "desc"`)
	}
	return nil
}

type ParamsGetTransaction struct {
	ParamsToken
	Hash *factom.Bytes32 `json:"entryhash"`
}

func (p ParamsGetTransaction) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if p.Hash == nil {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "entryhash"`)
	}
	return nil
}

type ParamsGetTransactions struct {
	ParamsToken
	ParamsPagination
	// Transaction filters
	NFTokenID *fat1.NFTokenID    `json:"nftokenid,omitempty"`
	Addresses []factom.FAAddress `json:"addresses,omitempty"`
	StartHash *factom.Bytes32    `json:"entryhash,omitempty"`
	ToFrom    string             `json:"tofrom,omitempty"`
}

func (p *ParamsGetTransactions) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if err := p.ParamsPagination.IsValid(); err != nil {
		return err
	}

	p.ToFrom = strings.ToLower(p.ToFrom)
	switch p.ToFrom {
	case "to", "from":
		if len(p.Addresses) == 0 {
			return fat.NewError(fat.MissingRequiredParameter,
				`"addresses" may not be empty when "tofrom" is set`)
		}
	case "":
	default:
		return fat.NewError(fat.InvalidParameter,
			`"tofrom" value must be either "to" or "from"`)
	}
	return nil
}

type ParamsGetNFToken struct {
	ParamsToken
	NFTokenID *fat1.NFTokenID `json:"nftokenid"`
}

func (p ParamsGetNFToken) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if p.NFTokenID == nil {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "nftokenid"`)
	}
	return nil
}

type ParamsGetAllNFTokens struct {
	ParamsToken
	ParamsPagination
}

func (p *ParamsGetAllNFTokens) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	return p.ParamsPagination.IsValid()
}

type ParamsGetBalance struct {
	ParamsToken
	Address *factom.FAAddress `json:"address,omitempty"`
}

func (p ParamsGetBalance) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if p.Address == nil {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "address"`)
	}
	return nil
}

type ParamsGetBalances struct {
	Address        *factom.FAAddress `json:"address,omitempty"`
	IncludePending bool              `json:"includepending,omitempty"`
}

func (p ParamsGetBalances) IsValid() error {
	if p.Address == nil {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "address"`)
	}
	return nil
}

type ParamsGetNFBalance struct {
	ParamsToken
	ParamsPagination
	Address *factom.FAAddress `json:"address,omitempty"`
}

func (p *ParamsGetNFBalance) IsValid() error {
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if err := p.ParamsPagination.IsValid(); err != nil {
		return err
	}
	if p.Address == nil {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "address"`)
	}
	return nil
}

// ParamsSendTransaction submits a signed FAT entry through fatd, which
// validates it against the token state and pays for it with its own Entry
// Credits. Use DryRun to only validate.
type ParamsSendTransaction struct {
	ParamsToken
	ExtIDs  []factom.Bytes `json:"extids,omitempty"`
	Content factom.Bytes   `json:"content,omitempty"`
	Raw     factom.Bytes   `json:"raw,omitempty"`
	DryRun  bool           `json:"dryrun,omitempty"`
}

// NewParamsSendTransaction returns the params that send the signed record r
// to its token chain.
func NewParamsSendTransaction(r fat.SignedRecord) ParamsSendTransaction {
	chainID := r.ChainID
	return ParamsSendTransaction{
		ParamsToken: ParamsToken{ChainID: &chainID},
		ExtIDs:      r.ExtIDs,
		Content:     r.Content,
	}
}

func (p ParamsSendTransaction) IsValid() error {
	if p.Raw != nil {
		if p.ExtIDs != nil || p.Content != nil ||
			p.ParamsToken != (ParamsToken{}) {
			return fat.NewError(fat.InvalidParameter,
				`"raw" cannot be used with "content" or "extids"`)
		}
		var e factom.Entry
		if err := e.UnmarshalBinary(p.Raw); err != nil {
			return fat.NewError(fat.InvalidParameter, "raw: %v", err)
		}
		return nil
	}
	if err := p.ParamsToken.IsValid(); err != nil {
		return err
	}
	if len(p.Content) == 0 || len(p.ExtIDs) == 0 {
		return fat.NewError(fat.MissingRequiredParameter,
			`required: "raw" or "content" and "extids"`)
	}
	return nil
}
