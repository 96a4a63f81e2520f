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
	"fmt"
	"time"

	"golang.org/x/crypto/ed25519"
)

const (
	// EntryCommitSize is the size of a commit-entry message.
	EntryCommitSize = 1 + // version
		6 + // timestamp
		32 + // entry hash
		1 + // ec cost
		32 + // ec pub
		64 // sig

	// ChainCommitSize is the size of a commit-chain message.
	ChainCommitSize = 1 + // version
		6 + // timestamp
		32 + // chain id hash
		32 + // commit weld
		32 + // entry hash
		1 + // ec cost
		32 + // ec pub
		64 // sig

	// NewChainCost is the additional Entry Credit cost of creating a new
	// chain.
	NewChainCost = 10
)

// GenerateCommit returns the commit message paying cost Entry Credits from es
// for the Entry e, along with the commit's transaction ID.
//
// If e.ChainID is nil, a commit-chain message is generated for a new chain
// and cost must already include NewChainCost. Otherwise a commit-entry
// message is generated. The timestamp ts is encoded in milliseconds.
//
// The e.ChainID and e.Hash are populated as by e.MarshalBinary.
func GenerateCommit(es EsAddress, e *Entry, cost uint8, ts time.Time) (
	commit []byte, txID Bytes32, err error) {

	newChain := e.ChainID == nil
	if _, err = e.MarshalBinary(); err != nil {
		return
	}

	size := EntryCommitSize
	if newChain {
		size = ChainCommitSize
	}
	commit = make([]byte, size)

	i := 1 // Version byte is 0x00.
	i += putUint48(commit[i:], uint64(ts.UnixNano()/1e6))

	if newChain {
		chainIDHash := sha256d(e.ChainID[:])
		i += copy(commit[i:], chainIDHash[:])

		// sha256d(entryhash | chainid)
		weld := sha256d(append(e.Hash[:], e.ChainID[:]...))
		i += copy(commit[i:], weld[:])
	}

	i += copy(commit[i:], e.Hash[:])

	commit[i] = cost
	i++
	signedDataEnd := i
	txID = sha256.Sum256(commit[:signedDataEnd])

	i += copy(commit[i:], es.PublicKey())

	copy(commit[i:], ed25519.Sign(es.PrivateKey(), commit[:signedDataEnd]))
	return
}

// VerifyCommit returns an error if commit is not a well formed commit-entry
// or commit-chain message with a valid signature.
func VerifyCommit(commit []byte) error {
	switch len(commit) {
	case EntryCommitSize, ChainCommitSize:
	default:
		return fmt.Errorf("invalid length")
	}
	if commit[0] != 0x00 {
		return fmt.Errorf("invalid version byte")
	}
	sigStart := len(commit) - SignatureSize
	pubStart := sigStart - ed25519.PublicKeySize
	pub := ed25519.PublicKey(commit[pubStart:sigStart])
	if !ed25519.Verify(pub, commit[:pubStart], commit[sigStart:]) {
		return fmt.Errorf("invalid signature")
	}
	return nil
}

func putUint48(data []byte, x uint64) int {
	for i := 5; i >= 0; i-- {
		data[i] = byte(x)
		x >>= 8
	}
	return 6
}
