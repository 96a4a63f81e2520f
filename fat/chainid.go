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
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
)

// IssuerIDPrefix is the hex prefix of every identity chain ID.
const IssuerIDPrefix = "888888"

// ValidIdentityChainID returns true if chainID is 32 bytes and begins with
// the identity chain prefix 0x888888.
func ValidIdentityChainID(chainID factom.Bytes) bool {
	return len(chainID) == len(factom.Bytes32{}) &&
		chainID[0] == 0x88 && chainID[1] == 0x88 && chainID[2] == 0x88
}

// ParseIssuerID parses a 64 character hex identity chain ID that begins with
// IssuerIDPrefix.
func ParseIssuerID(issuerID string) (factom.Bytes32, error) {
	var chainID factom.Bytes32
	if len(issuerID) != hex.EncodedLen(len(chainID)) ||
		!strings.HasPrefix(issuerID, IssuerIDPrefix) {
		return chainID, NewError(InvalidParameter,
			"issuer id must be 64 hex characters beginning with %q",
			IssuerIDPrefix)
	}
	if err := chainID.Set(issuerID); err != nil {
		return chainID, NewError(InvalidParameter, "issuer id: %v", err)
	}
	return chainID, nil
}

// ParseChainID parses a 64 character hex chain ID.
func ParseChainID(chainID string) (factom.Bytes32, error) {
	var b32 factom.Bytes32
	if err := b32.Set(chainID); err != nil {
		return b32, NewError(InvalidChainID, "%q: %v", chainID, err)
	}
	return b32, nil
}

// ValidTokenNameIDs returns true if the nameIDs match the pattern for a valid
// token chain.
func ValidTokenNameIDs(nameIDs []factom.Bytes) bool {
	return len(nameIDs) == 4 && len(nameIDs[1]) > 0 &&
		string(nameIDs[0]) == "token" && string(nameIDs[2]) == "issuer" &&
		ValidIdentityChainID(nameIDs[3]) &&
		utf8.Valid(nameIDs[1])
}

// NameIDs returns the NameIDs of the token chain: the ExtIDs of its first
// entry.
func NameIDs(tokenID string, issuerChainID factom.Bytes32) []factom.Bytes {
	return []factom.Bytes{
		[]byte("token"), []byte(tokenID),
		[]byte("issuer"), issuerChainID[:],
	}
}

// ChainID returns the chain ID for a given token ID and issuer Chain ID.
func ChainID(tokenID string, issuerChainID factom.Bytes32) factom.Bytes32 {
	return factom.ComputeChainID(NameIDs(tokenID, issuerChainID))
}
