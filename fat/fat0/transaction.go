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
	"encoding/json"
	"fmt"

	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

const Type = fat.TypeFAT0

// Transaction builds a FAT-0 transaction, which can be a normal transfer or a
// coinbase transaction that mints new tokens, depending on the Inputs.
//
// A Transaction is not safe for concurrent use.
type Transaction struct {
	Inputs  AddressAmountMap
	Outputs AddressAmountMap
	fat.Entry
}

// NewTransaction returns an empty Transaction with its timestamp set to the
// current time.
func NewTransaction() *Transaction {
	return &Transaction{Entry: fat.NewEntry()}
}

// AddInput sets the amount sent from the FA address adrStr. Re-adding an
// address replaces its amount.
func (t *Transaction) AddInput(adrStr string, amount uint64) error {
	adr, err := fat.ParseAddress(adrStr)
	if err != nil {
		return err
	}
	t.Inputs.Set(adr, amount)
	return nil
}

// AddOutput sets the amount sent to the FA address adrStr. Re-adding an
// address replaces its amount.
func (t *Transaction) AddOutput(adrStr string, amount uint64) error {
	adr, err := fat.ParseAddress(adrStr)
	if err != nil {
		return err
	}
	t.Outputs.Set(adr, amount)
	return nil
}

// IsMint returns true if the only input is the coinbase address.
func (t Transaction) IsMint() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].Address == fat.Coinbase()
}

// IsValid returns true if there is one signer per input, the inputs and
// outputs are not empty, the chain id is set, and the inputs and outputs sum
// to the same amount.
func (t Transaction) IsValid() bool {
	return t.validate() == nil
}

func (t Transaction) validate() error {
	if len(t.Inputs) == 0 || len(t.Outputs) == 0 {
		return fmt.Errorf("inputs and outputs must not be empty")
	}
	if len(t.Inputs) != len(t.Signers()) {
		return fmt.Errorf("%v inputs but %v signers",
			len(t.Inputs), len(t.Signers()))
	}
	if t.ChainID() == nil {
		return fmt.Errorf("chain id not set")
	}
	in, err := t.Inputs.Sum()
	if err != nil {
		return err
	}
	out, err := t.Outputs.Sum()
	if err != nil {
		return err
	}
	if in != out {
		return fmt.Errorf("sum(inputs) != sum(outputs)")
	}
	return nil
}

// Content returns the canonical JSON entry content of t.
func (t Transaction) Content() ([]byte, error) {
	return fat.EncodeContent(t.Inputs, t.Outputs, t.Metadata())
}

// Sign returns the signed record for t. The signers must be IssuerSigners if
// t.IsMint() and TransferSigners otherwise.
func (t Transaction) Sign() (fat.SignedRecord, error) {
	if err := t.validate(); err != nil {
		return fat.SignedRecord{}, fat.NewError(fat.InvalidTransaction,
			"%v", err)
	}
	content, err := t.Content()
	if err != nil {
		return fat.SignedRecord{}, fat.NewError(fat.InvalidParameter,
			"%v", err)
	}
	return t.SignContent(content, t.IsMint())
}

// MarshalJSON returns the canonical JSON entry content of t.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return t.Content()
}

// UnmarshalJSON parses FAT-0 transaction content as returned by fatd.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var tRaw struct {
		Inputs   AddressAmountMap `json:"inputs"`
		Outputs  AddressAmountMap `json:"outputs"`
		Metadata json.RawMessage  `json:"metadata"`
	}
	if err := json.Unmarshal(jsonlen.Compact(data), &tRaw); err != nil {
		return fmt.Errorf("%T: %w", t, err)
	}
	t.Inputs, t.Outputs = tRaw.Inputs, tRaw.Outputs
	var metadata interface{}
	if len(tRaw.Metadata) > 0 {
		metadata = tRaw.Metadata
	}
	if err := t.SetMetadata(metadata); err != nil {
		return fmt.Errorf("%T: %w", t, err)
	}
	return nil
}
