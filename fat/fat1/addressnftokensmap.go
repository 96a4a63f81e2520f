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

package fat1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
)

// AddressNFTokens is one entry of an AddressNFTokensMap.
type AddressNFTokens struct {
	Address factom.FAAddress
	Tokens  NFTokenAmount
}

// AddressNFTokensMap relates FA addresses to the NFTokenIDs they send or
// receive. Entries keep the order in which their addresses were first set.
type AddressNFTokensMap []AddressNFTokens

// Set sets the tokens for adr. An existing address keeps its position.
func (m *AddressNFTokensMap) Set(adr factom.FAAddress, tkns NFTokenAmount) {
	for i := range *m {
		if (*m)[i].Address == adr {
			(*m)[i].Tokens = tkns
			return
		}
	}
	*m = append(*m, AddressNFTokens{Address: adr, Tokens: tkns})
}

// Get returns the tokens for adr and whether adr is present.
func (m AddressNFTokensMap) Get(adr factom.FAAddress) (NFTokenAmount, bool) {
	for _, at := range m {
		if at.Address == adr {
			return at.Tokens, true
		}
	}
	return nil, false
}

// NumNFTokenIDs returns the total number of NFTokenIDs over all addresses.
func (m AddressNFTokensMap) NumNFTokenIDs() int {
	var numTknIDs int
	for _, at := range m {
		numTknIDs += at.Tokens.Len()
	}
	return numTknIDs
}

// AllNFTokens returns the union of the NFTokenIDs of all addresses, or an
// error naming the first NFTokenID owned by two addresses.
func (m AddressNFTokensMap) AllNFTokens() (NFTokens, error) {
	allTkns := make(NFTokens, m.NumNFTokenIDs())
	for _, at := range m {
		tkns, err := at.Tokens.NFTokens()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", at.Address, err)
		}
		if err := allTkns.Append(tkns); err != nil {
			return nil, fmt.Errorf("%w: %v and %v", err, at.Address,
				m.owner(err, at.Address))
		}
	}
	return allTkns, nil
}

func (m AddressNFTokensMap) owner(err error, not factom.FAAddress) factom.FAAddress {
	tknID, ok := err.(ErrorNFTokenIDIntersection)
	if !ok {
		return factom.FAAddress{}
	}
	for _, at := range m {
		if at.Address == not {
			continue
		}
		tkns, _ := at.Tokens.NFTokens()
		if _, ok := tkns[NFTokenID(tknID)]; ok {
			return at.Address
		}
	}
	return factom.FAAddress{}
}

// MarshalJSON marshals m as a JSON object with keys in insertion order.
func (m AddressNFTokensMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, at := range m {
		data, err := at.Tokens.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", at.Address, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(at.Address.String()))
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON unmarshals a JSON object of addresses and token lists,
// keeping the order of its keys. Duplicate addresses and NFTokenIDs owned
// by more than one address cause an error.
func (m *AddressNFTokensMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tkn, err := dec.Token(); err != nil || tkn != json.Delim('{') {
		return fmt.Errorf("%T: expected JSON object", m)
	}
	adrTkns := AddressNFTokensMap{}
	for dec.More() {
		tkn, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%T: %w", m, err)
		}
		var adr factom.FAAddress
		if err := adr.Set(tkn.(string)); err != nil {
			return fmt.Errorf("%T: %#v: %w", m, tkn, err)
		}
		if _, ok := adrTkns.Get(adr); ok {
			return fmt.Errorf("%T: duplicate address: %v", m, adr)
		}
		var tkns NFTokenAmount
		if err := dec.Decode(&tkns); err != nil {
			return fmt.Errorf("%T: %v: %w", m, adr, err)
		}
		adrTkns = append(adrTkns, AddressNFTokens{Address: adr, Tokens: tkns})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%T: %w", m, err)
	}
	if adrTkns.NumNFTokenIDs() > maxCapacity {
		return fmt.Errorf("%T: %w", m, ErrorCapacity)
	}
	if _, err := adrTkns.AllNFTokens(); err != nil {
		return fmt.Errorf("%T: %w", m, err)
	}
	*m = adrTkns
	return nil
}
