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
	"encoding/json"
	"fmt"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
)

// Issuance is the content of a token's initialization entry as reported by
// fatd.
type Issuance struct {
	Type     fat.Type        `json:"type"`
	Supply   int64           `json:"supply"`
	Symbol   string          `json:"symbol,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type ResultGetIssuance struct {
	ParamsToken
	Hash      *factom.Bytes32 `json:"entryhash"`
	Timestamp int64           `json:"timestamp"`
	Issuance  Issuance        `json:"issuance"`
}

// ResultGetTransaction holds a transaction entry's hash and timestamp, and
// its content in Tx. Use FAT0 or FAT1, according to the token type, to parse
// Tx.
type ResultGetTransaction struct {
	Hash      *factom.Bytes32 `json:"entryhash"`
	Timestamp int64           `json:"timestamp"`
	Tx        json.RawMessage `json:"data"`
	Pending   bool            `json:"pending,omitempty"`
}

// FAT0 parses Tx as a FAT-0 transaction.
func (r ResultGetTransaction) FAT0() (*fat0.Transaction, error) {
	tx := new(fat0.Transaction)
	if err := json.Unmarshal(r.Tx, tx); err != nil {
		return nil, fmt.Errorf("tx %v: %w", r.Hash, err)
	}
	return tx, nil
}

// FAT1 parses Tx as a FAT-1 transaction.
func (r ResultGetTransaction) FAT1() (*fat1.Transaction, error) {
	tx := new(fat1.Transaction)
	if err := json.Unmarshal(r.Tx, tx); err != nil {
		return nil, fmt.Errorf("tx %v: %w", r.Hash, err)
	}
	return tx, nil
}

// ResultGetBalances maps token chain IDs to the balance of an address.
type ResultGetBalances map[factom.Bytes32]uint64

func (r ResultGetBalances) MarshalJSON() ([]byte, error) {
	strMap := make(map[string]uint64, len(r))
	for chainID, balance := range r {
		strMap[chainID.String()] = balance
	}
	return json.Marshal(strMap)
}

func (r *ResultGetBalances) UnmarshalJSON(data []byte) error {
	var strMap map[string]uint64
	if err := json.Unmarshal(data, &strMap); err != nil {
		return err
	}
	*r = make(map[factom.Bytes32]uint64, len(strMap))
	for str, balance := range strMap {
		var chainID factom.Bytes32
		if err := chainID.Set(str); err != nil {
			return err
		}
		(*r)[chainID] = balance
	}
	return nil
}

type ResultGetStats struct {
	ParamsToken
	Issuance                 *Issuance       `json:"issuance,omitempty"`
	IssuanceHash             *factom.Bytes32 `json:"issuancehash,omitempty"`
	CirculatingSupply        uint64          `json:"circulating"`
	Burned                   uint64          `json:"burned"`
	Transactions             int64           `json:"transactions"`
	IssuanceTimestamp        int64           `json:"issuancets"`
	LastTransactionTimestamp int64           `json:"lasttxts,omitempty"`
	NonZeroBalances          int64           `json:"nonzerobalances,omitempty"`
}

type ResultGetNFToken struct {
	NFTokenID  fat1.NFTokenID    `json:"id"`
	Owner      *factom.FAAddress `json:"owner,omitempty"`
	Burned     bool              `json:"burned,omitempty"`
	Metadata   json.RawMessage   `json:"metadata,omitempty"`
	CreationTx *factom.Bytes32   `json:"creationtx"`
}

type ResultSendTransaction struct {
	ChainID *factom.Bytes32 `json:"chainid"`
	TxID    *factom.Bytes32 `json:"txid,omitempty"`
	Hash    *factom.Bytes32 `json:"entryhash"`
}

type ResultGetDaemonProperties struct {
	FatdVersion string `json:"fatdversion"`
	APIVersion  string `json:"apiversion"`
	NetworkID   string `json:"factomnetworkid,omitempty"`
}

type ResultGetSyncStatus struct {
	Sync    uint32 `json:"syncheight"`
	Current uint32 `json:"factomheight"`
}
