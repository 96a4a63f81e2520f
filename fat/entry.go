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

package fat

import (
	"crypto/sha512"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

// Entry has the fields and methods common to the FAT-0 and FAT-1 transaction
// builders: the token chain, the metadata, the ordered signers and the
// timestamp salt.
//
// An Entry is not safe for concurrent use.
type Entry struct {
	chainID   *factom.Bytes32
	metadata  json.RawMessage
	signers   []Signer
	timestamp time.Time
}

// NewEntry returns an Entry whose timestamp is the current time.
func NewEntry() Entry {
	return Entry{timestamp: time.Now()}
}

// SetChainID sets the token chain ID from its 64 character hex encoding.
func (e *Entry) SetChainID(chainID string) error {
	b32, err := ParseChainID(chainID)
	if err != nil {
		return err
	}
	e.chainID = &b32
	return nil
}

// SetTokenChainID sets the chain ID of the token with the given tokenID and
// issuer identity chain ID.
func (e *Entry) SetTokenChainID(tokenID, issuerID string) error {
	if len(tokenID) == 0 {
		return NewError(MissingRequiredParameter, "token id")
	}
	issuerChainID, err := ParseIssuerID(issuerID)
	if err != nil {
		return err
	}
	chainID := ChainID(tokenID, issuerChainID)
	e.chainID = &chainID
	return nil
}

// ChainID returns the token chain ID or nil if it has not been set.
func (e Entry) ChainID() *factom.Bytes32 {
	return e.chainID
}

// SetMetadata sets the metadata to the JSON encoding of v. A nil v clears
// the metadata.
func (e *Entry) SetMetadata(v interface{}) error {
	metadata, err := marshalMetadata(v)
	if err != nil {
		return err
	}
	e.metadata = metadata
	return nil
}

// Metadata returns the compact JSON metadata.
func (e Entry) Metadata() json.RawMessage {
	return e.metadata
}

// AddSigner appends s to the ordered signers. Its kind is checked when the
// entry is signed.
func (e *Entry) AddSigner(s Signer) {
	e.signers = append(e.signers, s)
}

// AddSignerString parses keyStr with ParseSigner and appends it to the
// signers.
func (e *Entry) AddSignerString(keyStr string) error {
	s, err := ParseSigner(keyStr)
	if err != nil {
		return err
	}
	e.AddSigner(s)
	return nil
}

// Signers returns the ordered signers.
func (e Entry) Signers() []Signer {
	return e.signers
}

// SetTimestamp overrides the timestamp salt, for example to reproduce a
// historical entry.
func (e *Entry) SetTimestamp(ts time.Time) {
	e.timestamp = ts
}

// Timestamp returns the timestamp salt.
func (e Entry) Timestamp() time.Time {
	return e.timestamp
}

// SignContent signs content with each of the signers, in order, and returns
// the resulting SignedRecord. The signers must all be IssuerSigners if mint
// is true and TransferSigners otherwise.
//
// The i'th signer signs sha512(decimal(i) + decimal(timestamp) + chainID +
// content). The ExtIDs are the decimal timestamp followed by an RCD and
// signature per signer.
func (e Entry) SignContent(content []byte, mint bool) (SignedRecord, error) {
	if e.chainID == nil {
		return SignedRecord{}, NewError(InvalidTransaction, "chain id not set")
	}
	if e.timestamp.IsZero() {
		return SignedRecord{}, NewError(InvalidTransaction,
			"timestamp not set, use NewEntry or SetTimestamp")
	}
	kind := TransferSignerKind
	if mint {
		kind = IssuerSignerKind
	}
	for i, s := range e.signers {
		if s.Kind() != kind {
			return SignedRecord{}, NewError(InvalidParameter,
				"signer %v: %v required, got %v", i, kind, s.Kind())
		}
	}
	timeSalt := []byte(strconv.FormatInt(e.timestamp.Unix(), 10))
	return signRecord(*e.chainID, timeSalt, content, e.signers), nil
}

func signRecord(chainID factom.Bytes32, timeSalt, content []byte,
	signers []Signer) SignedRecord {

	// Compose the signed message data using exactly allocated bytes. The
	// rcdSigID salt is right aligned in its prefix space so that msg can
	// be resliced for each signer.
	maxSaltLen := jsonlen.Uint64(uint64(len(signers)))
	msg := make([]byte, maxSaltLen+len(timeSalt)+len(chainID)+len(content))
	i := maxSaltLen
	i += copy(msg[i:], timeSalt)
	i += copy(msg[i:], chainID[:])
	copy(msg[i:], content)

	extIDs := make([]factom.Bytes, 1, len(signers)*2+1)
	extIDs[0] = timeSalt
	for rcdSigID, s := range signers {
		salt := strconv.FormatUint(uint64(rcdSigID), 10)
		start := maxSaltLen - len(salt)
		copy(msg[start:], salt)

		msgHash := sha512.Sum512(msg[start:])
		extIDs = append(extIDs, s.RCD(), s.Sign(msgHash[:]))
	}
	return SignedRecord{ChainID: chainID, ExtIDs: extIDs, Content: content}
}
