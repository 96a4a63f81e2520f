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
	"strings"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"golang.org/x/crypto/ed25519"
)

// SignerKind distinguishes the two kinds of keys that may sign a FAT entry.
type SignerKind int

const (
	// TransferSignerKind is an Fs key authorizing a normal transfer from
	// its FA address.
	TransferSignerKind SignerKind = iota + 1
	// IssuerSignerKind is the issuer's sk1 key authorizing a coinbase
	// transaction or the issuance entry.
	IssuerSignerKind
)

func (k SignerKind) String() string {
	switch k {
	case TransferSignerKind:
		return "transfer signer (Fs)"
	case IssuerSignerKind:
		return "issuer signer (sk1)"
	}
	return "unset signer"
}

// Signer is a tagged union of the two signing key kinds. The zero value is
// not a valid Signer.
type Signer struct {
	kind SignerKind
	key  factom.RCDSigner
}

// TransferSigner returns a Signer for the FA address of fs.
func TransferSigner(fs factom.FsAddress) Signer {
	return Signer{kind: TransferSignerKind, key: fs}
}

// IssuerSigner returns a Signer for the issuer identity key sk1.
func IssuerSigner(sk1 factom.SK1Key) Signer {
	return Signer{kind: IssuerSignerKind, key: sk1}
}

// ParseSigner parses keyStr as either an Fs private Factoid address or an
// sk1 identity key.
func ParseSigner(keyStr string) (Signer, error) {
	switch {
	case strings.HasPrefix(keyStr, "Fs"):
		fs, err := factom.NewFsAddress(keyStr)
		if err != nil {
			return Signer{}, NewError(InvalidParameter, "Fs key: %v", err)
		}
		return TransferSigner(fs), nil
	case strings.HasPrefix(keyStr, "sk1"):
		sk1, err := factom.NewSK1Key(keyStr)
		if err != nil {
			return Signer{}, NewError(InvalidParameter, "sk1 key: %v", err)
		}
		return IssuerSigner(sk1), nil
	}
	return Signer{}, NewError(InvalidParameter,
		"signer must be an Fs or sk1 private key")
}

// Kind returns the kind of key held by s.
func (s Signer) Kind() SignerKind {
	return s.kind
}

// RCD returns 0x01 followed by the public key of s.
func (s Signer) RCD() []byte {
	return s.key.RCD()
}

// Sign returns the ed25519 signature of msg.
func (s Signer) Sign(msg []byte) []byte {
	return ed25519.Sign(s.key.PrivateKey(), msg)
}

// FAAddress returns the FA address that s authorizes spending from. It is
// only meaningful for a TransferSigner.
func (s Signer) FAAddress() factom.FAAddress {
	var fa factom.FAAddress
	if fs, ok := s.key.(factom.FsAddress); ok {
		fa = fs.FAAddress()
	}
	return fa
}
