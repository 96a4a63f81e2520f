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
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/ed25519"
)

// There are four Factom address types, forming two pairs: public and private
// Factoid addresses, and public and private Entry Credit addresses. All
// addresses are a 32 byte payload encoded using base58check with a two byte
// prefix. Encoded addresses are always 52 characters long.

// Address is the interface implemented by the four address types: FAAddress,
// FsAddress, ECAddress, and EsAddress.
type Address interface {
	// PrefixString returns the encoded prefix string for the Address.
	PrefixString() string
	// String encodes the address to a base58check string with the
	// appropriate prefix.
	String() string
	// Payload returns the address as a byte array.
	Payload() [sha256.Size]byte
}

// FAAddress is a Public Factoid Address. Its payload is the RCD hash of the
// corresponding FsAddress.
type FAAddress payload

// FsAddress is the secret key to a FAAddress.
type FsAddress payload

// ECAddress is a Public Entry Credit Address. Its payload is the raw ed25519
// public key of the corresponding EsAddress.
type ECAddress payload

// EsAddress is the secret key to a ECAddress.
type EsAddress payload

var (
	_ Address   = FAAddress{}
	_ Address   = FsAddress{}
	_ Address   = ECAddress{}
	_ Address   = EsAddress{}
	_ RCDSigner = FsAddress{}
)

var (
	faPrefixBytes = []byte{0x5f, 0xb1}
	fsPrefixBytes = []byte{0x64, 0x78}
	ecPrefixBytes = []byte{0x59, 0x2a}
	esPrefixBytes = []byte{0x5d, 0xb6}
)

const (
	faPrefixStr = "FA"
	fsPrefixStr = "Fs"
	ecPrefixStr = "EC"
	esPrefixStr = "Es"
)

// AddressLen is the length of every human readable address string.
const AddressLen = 52

// Payload returns adr as a byte array.
func (adr FAAddress) Payload() [sha256.Size]byte { return adr }

// Payload returns adr as a byte array.
func (adr FsAddress) Payload() [sha256.Size]byte { return adr }

// Payload returns adr as a byte array.
func (adr ECAddress) Payload() [sha256.Size]byte { return adr }

// Payload returns adr as a byte array.
func (adr EsAddress) Payload() [sha256.Size]byte { return adr }

// PrefixString returns "FA".
func (FAAddress) PrefixString() string { return faPrefixStr }

// PrefixString returns "Fs".
func (FsAddress) PrefixString() string { return fsPrefixStr }

// PrefixString returns "EC".
func (ECAddress) PrefixString() string { return ecPrefixStr }

// PrefixString returns "Es".
func (EsAddress) PrefixString() string { return esPrefixStr }

// String encodes adr into its human readable form.
func (adr FAAddress) String() string { return payload(adr).StringPrefix(faPrefixBytes) }

// String encodes adr into its human readable form.
func (adr FsAddress) String() string { return payload(adr).StringPrefix(fsPrefixBytes) }

// String encodes adr into its human readable form.
func (adr ECAddress) String() string { return payload(adr).StringPrefix(ecPrefixBytes) }

// String encodes adr into its human readable form.
func (adr EsAddress) String() string { return payload(adr).StringPrefix(esPrefixBytes) }

// MarshalJSON encodes adr as a JSON string using adr.String().
func (adr FAAddress) MarshalJSON() ([]byte, error) {
	return payload(adr).MarshalJSONPrefix(faPrefixBytes)
}

// MarshalJSON encodes adr as a JSON string using adr.String().
func (adr FsAddress) MarshalJSON() ([]byte, error) {
	return payload(adr).MarshalJSONPrefix(fsPrefixBytes)
}

// MarshalJSON encodes adr as a JSON string using adr.String().
func (adr ECAddress) MarshalJSON() ([]byte, error) {
	return payload(adr).MarshalJSONPrefix(ecPrefixBytes)
}

// MarshalJSON encodes adr as a JSON string using adr.String().
func (adr EsAddress) MarshalJSON() ([]byte, error) {
	return payload(adr).MarshalJSONPrefix(esPrefixBytes)
}

// Set attempts to parse adrStr into adr.
func (adr *FAAddress) Set(adrStr string) error {
	return (*payload)(adr).SetPrefix(adrStr, faPrefixStr)
}

// Set attempts to parse adrStr into adr.
func (adr *FsAddress) Set(adrStr string) error {
	return (*payload)(adr).SetPrefix(adrStr, fsPrefixStr)
}

// Set attempts to parse adrStr into adr.
func (adr *ECAddress) Set(adrStr string) error {
	return (*payload)(adr).SetPrefix(adrStr, ecPrefixStr)
}

// Set attempts to parse adrStr into adr.
func (adr *EsAddress) Set(adrStr string) error {
	return (*payload)(adr).SetPrefix(adrStr, esPrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable FA address.
func (adr *FAAddress) UnmarshalJSON(data []byte) error {
	return (*payload)(adr).UnmarshalJSONPrefix(data, faPrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable Fs address.
func (adr *FsAddress) UnmarshalJSON(data []byte) error {
	return (*payload)(adr).UnmarshalJSONPrefix(data, fsPrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable EC address.
func (adr *ECAddress) UnmarshalJSON(data []byte) error {
	return (*payload)(adr).UnmarshalJSONPrefix(data, ecPrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable Es address.
func (adr *EsAddress) UnmarshalJSON(data []byte) error {
	return (*payload)(adr).UnmarshalJSONPrefix(data, esPrefixStr)
}

// Type is used by pflag for help output.
func (FAAddress) Type() string { return "FAAddress" }

// Type is used by pflag for help output.
func (EsAddress) Type() string { return "EsAddress" }

// NewFAAddress attempts to parse adrStr into a new FAAddress.
func NewFAAddress(adrStr string) (adr FAAddress, err error) {
	err = adr.Set(adrStr)
	return
}

// NewFsAddress attempts to parse adrStr into a new FsAddress.
func NewFsAddress(adrStr string) (adr FsAddress, err error) {
	err = adr.Set(adrStr)
	return
}

// NewECAddress attempts to parse adrStr into a new ECAddress.
func NewECAddress(adrStr string) (adr ECAddress, err error) {
	err = adr.Set(adrStr)
	return
}

// NewEsAddress attempts to parse adrStr into a new EsAddress.
func NewEsAddress(adrStr string) (adr EsAddress, err error) {
	err = adr.Set(adrStr)
	return
}

// NewAddress parses adrStr and returns the correct address type as an Address
// interface. This is useful when the address type isn't known prior to
// parsing adrStr.
func NewAddress(adrStr string) (Address, error) {
	if len(adrStr) != AddressLen {
		return nil, fmt.Errorf("invalid length")
	}
	switch adrStr[:2] {
	case faPrefixStr:
		return NewFAAddress(adrStr)
	case fsPrefixStr:
		return NewFsAddress(adrStr)
	case ecPrefixStr:
		return NewECAddress(adrStr)
	case esPrefixStr:
		return NewEsAddress(adrStr)
	}
	return nil, fmt.Errorf("unrecognized prefix")
}

// GenerateFsAddress generates a secure random private Factoid address using
// crypto/rand.Random as the source of randomness.
func GenerateFsAddress() (FsAddress, error) {
	return generatePrivKey()
}

// GenerateEsAddress generates a secure random private Entry Credit address
// using crypto/rand.Random as the source of randomness.
func GenerateEsAddress() (EsAddress, error) {
	return generatePrivKey()
}

func generatePrivKey() (key [sha256.Size]byte, err error) {
	var priv ed25519.PrivateKey
	if _, priv, err = ed25519.GenerateKey(rand.Reader); err != nil {
		return
	}
	copy(key[:], priv.Seed())
	return
}

// FAAddress computes the FAAddress corresponding to adr.
func (adr FsAddress) FAAddress() FAAddress {
	return adr.RCDHash()
}

// ECAddress computes the ECAddress corresponding to adr.
func (adr EsAddress) ECAddress() (ec ECAddress) {
	copy(ec[:], adr.PublicKey())
	return
}

// RCDHash returns the RCD hash encoded in adr.
func (adr FAAddress) RCDHash() [sha256.Size]byte {
	return adr
}

// RCDHash computes the RCD hash corresponding to adr.
func (adr FsAddress) RCDHash() [sha256.Size]byte {
	return sha256d(adr.RCD())
}

// RCD computes the RCD for adr.
func (adr FsAddress) RCD() []byte {
	return newRCD(adr.PublicKey())
}

// PublicKey computes the ed25519.PublicKey for adr.
func (adr FsAddress) PublicKey() ed25519.PublicKey {
	return adr.PrivateKey().Public().(ed25519.PublicKey)
}

// PrivateKey returns the ed25519.PrivateKey for adr.
func (adr FsAddress) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(adr[:])
}

// PublicKey returns the ed25519.PublicKey for adr.
func (adr ECAddress) PublicKey() ed25519.PublicKey {
	return adr[:]
}

// PublicKey computes the ed25519.PublicKey for adr.
func (adr EsAddress) PublicKey() ed25519.PublicKey {
	return adr.PrivateKey().Public().(ed25519.PublicKey)
}

// PrivateKey returns the ed25519.PrivateKey for adr.
func (adr EsAddress) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(adr[:])
}
