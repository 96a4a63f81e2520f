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

package fat0

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
)

// AddressAmount is one entry of an AddressAmountMap.
type AddressAmount struct {
	Address factom.FAAddress
	Amount  uint64
}

// AddressAmountMap relates FA addresses to amounts in the inputs or outputs
// of a transaction. Entries keep the order in which their addresses were
// first set, and marshal to a JSON object in that order.
type AddressAmountMap []AddressAmount

// Set sets the amount for adr. An existing address keeps its position.
func (m *AddressAmountMap) Set(adr factom.FAAddress, amount uint64) {
	for i := range *m {
		if (*m)[i].Address == adr {
			(*m)[i].Amount = amount
			return
		}
	}
	*m = append(*m, AddressAmount{Address: adr, Amount: amount})
}

// Get returns the amount for adr and whether adr is present.
func (m AddressAmountMap) Get(adr factom.FAAddress) (uint64, bool) {
	for _, aa := range m {
		if aa.Address == adr {
			return aa.Amount, true
		}
	}
	return 0, false
}

// Sum returns the sum of all amount values.
func (m AddressAmountMap) Sum() (uint64, error) {
	var sum uint64
	for _, aa := range m {
		if sum+aa.Amount < sum {
			return 0, fmt.Errorf("%T: sum overflows uint64", m)
		}
		sum += aa.Amount
	}
	return sum, nil
}

// MarshalJSON marshals m as a JSON object with keys in insertion order.
func (m AddressAmountMap) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(m)*(factom.AddressLen+24)+2))
	buf.WriteByte('{')
	for i, aa := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(aa.Address.String()))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatUint(aa.Amount, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON unmarshals a JSON object of addresses and amounts, keeping
// the order of its keys. Duplicate addresses cause an error.
func (m *AddressAmountMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tkn, err := dec.Token(); err != nil || tkn != json.Delim('{') {
		return fmt.Errorf("%T: expected JSON object", m)
	}
	*m = AddressAmountMap{}
	for dec.More() {
		tkn, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%T: %w", m, err)
		}
		var adr factom.FAAddress
		if err := adr.Set(tkn.(string)); err != nil {
			return fmt.Errorf("%T: %w", m, err)
		}
		if _, ok := m.Get(adr); ok {
			return fmt.Errorf("%T: duplicate address: %v", m, adr)
		}
		var amount uint64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("%T: %v: %w", m, adr, err)
		}
		*m = append(*m, AddressAmount{Address: adr, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%T: %w", m, err)
	}
	return nil
}
