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

package factom

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

const (
	// EntryHeaderSize is the size of the version byte, chain id and ExtIDs
	// total length that prefix every marshaled Entry.
	EntryHeaderSize = 1 + // version
		32 + // chain id
		2 // total len

	// EntryMaxDataSize is the maximum size of the ExtIDs and Content of an
	// Entry, including the two byte length prefix of each ExtID.
	EntryMaxDataSize = 10240
)

// Entry represents a Factom Entry.
//
// A nil ChainID means that the Entry is the first entry of a new chain, in
// which case MarshalBinary computes the ChainID from the ExtIDs.
type Entry struct {
	Hash    *Bytes32 `json:"entryhash,omitempty"`
	ChainID *Bytes32 `json:"chainid,omitempty"`

	ExtIDs  []Bytes `json:"extids"`
	Content Bytes   `json:"content"`
}

// ComputeChainID returns the chain ID for a set of NameIDs: the sha256 of the
// concatenated sha256 hashes of each NameID.
func ComputeChainID(nameIDs []Bytes) Bytes32 {
	hash := sha256.New()
	for _, id := range nameIDs {
		idSum := sha256.Sum256(id)
		hash.Write(idSum[:])
	}
	var chainID Bytes32
	copy(chainID[:], hash.Sum(nil))
	return chainID
}

// MarshalBinary marshals e into its Factom binary reveal format. If e.ChainID
// is nil it is populated using ComputeChainID(e.ExtIDs). The e.Hash is always
// populated.
func (e *Entry) MarshalBinary() ([]byte, error) {
	extIDTotalSize := len(e.ExtIDs) * 2 // Two byte len(ExtID) per ExtID
	for _, extID := range e.ExtIDs {
		extIDTotalSize += len(extID)
	}
	if extIDTotalSize+len(e.Content) > EntryMaxDataSize {
		return nil, fmt.Errorf("Entry cannot be larger than 10KB")
	}
	if e.ChainID == nil {
		chainID := ComputeChainID(e.ExtIDs)
		e.ChainID = &chainID
	}

	data := make([]byte, EntryHeaderSize+extIDTotalSize+len(e.Content))
	i := 1 // Version byte is 0x00.
	i += copy(data[i:], e.ChainID[:])
	i += putUint16(data[i:], extIDTotalSize)
	for _, extID := range e.ExtIDs {
		i += putUint16(data[i:], len(extID))
		i += copy(data[i:], extID)
	}
	copy(data[i:], e.Content)

	hash := EntryHash(data)
	e.Hash = &hash
	return data, nil
}

// UnmarshalBinary parses the Factom binary reveal format of an Entry. The
// e.Hash is not populated.
func (e *Entry) UnmarshalBinary(data []byte) error {
	if len(data) < EntryHeaderSize {
		return fmt.Errorf("insufficient length")
	}
	if len(data) > EntryHeaderSize+EntryMaxDataSize {
		return fmt.Errorf("invalid length")
	}
	if data[0] != 0x00 {
		return fmt.Errorf("invalid version byte")
	}
	extIDTotalSize := uint16At(data[33:35])
	if extIDTotalSize == 1 || EntryHeaderSize+extIDTotalSize > len(data) {
		return fmt.Errorf("invalid ExtIDs length")
	}

	extIDsEnd := EntryHeaderSize + extIDTotalSize
	extIDs := []Bytes{}
	pos := EntryHeaderSize
	for pos < extIDsEnd {
		if pos+2 > extIDsEnd {
			return fmt.Errorf("error parsing ExtIDs")
		}
		extIDSize := uint16At(data[pos : pos+2])
		pos += 2
		if pos+extIDSize > extIDsEnd {
			return fmt.Errorf("error parsing ExtIDs")
		}
		extIDs = append(extIDs, Bytes(data[pos:pos+extIDSize]))
		pos += extIDSize
	}

	e.ChainID = NewBytes32(data[1:33])
	e.ExtIDs = extIDs
	e.Content = data[pos:]
	return nil
}

// ComputeHash returns the Entry's hash as computed by hashing the binary
// representation of the Entry.
func (e Entry) ComputeHash() (Bytes32, error) {
	data, err := e.MarshalBinary()
	if err != nil {
		return Bytes32{}, err
	}
	return EntryHash(data), nil
}

// EntryHash returns the Entry hash of data. Entry's are hashed via:
// sha256(sha512(data) + data).
func EntryHash(data []byte) Bytes32 {
	sum := sha512.Sum512(data)
	saltedSum := make([]byte, len(sum)+len(data))
	i := copy(saltedSum, sum[:])
	copy(saltedSum[i:], data)
	return sha256.Sum256(saltedSum)
}

// EntryCost returns the number of Entry Credits that factomd charges for an
// Entry whose marshaled binary is size bytes long: one per started KB of
// data after the header, and at least one.
func EntryCost(size int) (uint8, error) {
	size -= EntryHeaderSize
	if size > EntryMaxDataSize {
		return 0, fmt.Errorf("Entry cannot be larger than 10KB")
	}
	cost := uint8(size / 1024)
	if size%1024 > 0 {
		cost++
	}
	if cost < 1 {
		cost = 1
	}
	return cost, nil
}

func putUint16(data []byte, x int) int {
	data[0], data[1] = byte(x>>8), byte(x)
	return 2
}

func uint16At(data []byte) int {
	return int(data[0])<<8 + int(data[1])
}
