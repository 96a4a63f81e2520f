package factom

import (
	"crypto/sha256"

	"golang.org/x/crypto/ed25519"
)

// Identity keys are encoded like addresses but with a three byte prefix, so
// their human readable form is 53 characters long. Only the level one keys
// are used by FAT: the sk1 key of the token issuer signs coinbase
// transactions and the issuance entry.

var (
	id1PrefixBytes = []byte{0x3f, 0xbe, 0xba}
	sk1PrefixBytes = []byte{0x4d, 0xb6, 0xc9}
)

const (
	id1PrefixStr = "id1"
	sk1PrefixStr = "sk1"
)

// ID1Key is the id1 public key for an identity.
type ID1Key payload

// SK1Key is the sk1 secret key for an identity.
type SK1Key payload

var _ RCDSigner = SK1Key{}

// Payload returns key as a byte array.
func (key ID1Key) Payload() [sha256.Size]byte { return key }

// Payload returns key as a byte array.
func (key SK1Key) Payload() [sha256.Size]byte { return key }

// PrefixString returns "id1".
func (ID1Key) PrefixString() string { return id1PrefixStr }

// PrefixString returns "sk1".
func (SK1Key) PrefixString() string { return sk1PrefixStr }

// String encodes key into its human readable form.
func (key ID1Key) String() string { return payload(key).StringPrefix(id1PrefixBytes) }

// String encodes key into its human readable form.
func (key SK1Key) String() string { return payload(key).StringPrefix(sk1PrefixBytes) }

// MarshalJSON encodes key as a JSON string using key.String().
func (key ID1Key) MarshalJSON() ([]byte, error) {
	return payload(key).MarshalJSONPrefix(id1PrefixBytes)
}

// MarshalJSON encodes key as a JSON string using key.String().
func (key SK1Key) MarshalJSON() ([]byte, error) {
	return payload(key).MarshalJSONPrefix(sk1PrefixBytes)
}

// NewID1Key attempts to parse keyStr into a new ID1Key.
func NewID1Key(keyStr string) (key ID1Key, err error) {
	err = key.Set(keyStr)
	return
}

// NewSK1Key attempts to parse keyStr into a new SK1Key.
func NewSK1Key(keyStr string) (key SK1Key, err error) {
	err = key.Set(keyStr)
	return
}

// GenerateSK1Key generates a secure random sk1 key using crypto/rand.Random
// as the source of randomness.
func GenerateSK1Key() (SK1Key, error) {
	return generatePrivKey()
}

// Set attempts to parse keyStr into key.
func (key *ID1Key) Set(keyStr string) error {
	return (*payload)(key).SetPrefix(keyStr, id1PrefixStr)
}

// Set attempts to parse keyStr into key.
func (key *SK1Key) Set(keyStr string) error {
	return (*payload)(key).SetPrefix(keyStr, sk1PrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable id1 key into key.
func (key *ID1Key) UnmarshalJSON(data []byte) error {
	return (*payload)(key).UnmarshalJSONPrefix(data, id1PrefixStr)
}

// UnmarshalJSON decodes a JSON string with a human readable sk1 key into key.
func (key *SK1Key) UnmarshalJSON(data []byte) error {
	return (*payload)(key).UnmarshalJSONPrefix(data, sk1PrefixStr)
}

// Type is used by pflag for help output.
func (SK1Key) Type() string { return "SK1Key" }

// ID1Key computes the ID1Key corresponding to key.
func (key SK1Key) ID1Key() ID1Key {
	return sha256d(key.RCD())
}

// RCD computes the RCD for key.
func (key SK1Key) RCD() []byte {
	return newRCD(key.PublicKey())
}

// PublicKey computes the ed25519.PublicKey for key.
func (key SK1Key) PublicKey() ed25519.PublicKey {
	return key.PrivateKey().Public().(ed25519.PublicKey)
}

// PrivateKey returns the ed25519.PrivateKey for key.
func (key SK1Key) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(key[:])
}
