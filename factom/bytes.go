package factom

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Bytes32 implements json.Marshaler and json.Unmarshaler to encode and decode
// strings with exactly 32 bytes of hex encoded data, such as chain IDs and key
// MRs.
type Bytes32 [32]byte

// NewBytes32 allocates a new Bytes32 object with the first 32 bytes of data
// contained in s32.
func NewBytes32(s32 []byte) *Bytes32 {
	b32 := new(Bytes32)
	copy(b32[:], s32)
	return b32
}

// NewBytes32FromString allocates a new Bytes32 object with the hex encoded
// string data contained in s32. It panics if s32 is not valid.
func NewBytes32FromString(s32 string) *Bytes32 {
	b32 := new(Bytes32)
	if err := b32.Set(s32); err != nil {
		panic(err)
	}
	return b32
}

// Set decodes a string with exactly 32 bytes of hex encoded data.
func (b *Bytes32) Set(hexStr string) error {
	if len(hexStr) != hex.EncodedLen(len(b)) {
		return fmt.Errorf("invalid length")
	}
	if _, err := hex.Decode(b[:], []byte(hexStr)); err != nil {
		return err
	}
	return nil
}

// String returns the hex encoded data of b.
func (b Bytes32) String() string {
	return hex.EncodeToString(b[:])
}

// Type returns "Bytes32". Used by pflag for help output.
func (Bytes32) Type() string {
	return "Bytes32"
}

// UnmarshalJSON unmarshals a string with exactly 32 bytes of hex encoded data.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	if err := b.Set(hexStr); err != nil {
		return fmt.Errorf("%T: %w", b, err)
	}
	return nil
}

// MarshalJSON marshals b into hex encoded data.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return Bytes(b[:]).MarshalJSON()
}

// IsZero returns true if b is all zeros.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// Bytes implements json.Marshaler and json.Unmarshaler to encode and decode
// strings with hex encoded data, such as an Entry's external IDs or content.
type Bytes []byte

// NewBytes decodes the hex encoded string data. It panics if hexStr is not
// valid hex.
func NewBytes(hexStr string) Bytes {
	var b Bytes
	if err := b.Set(hexStr); err != nil {
		panic(err)
	}
	return b
}

// Set decodes a string of hex encoded data into b.
func (b *Bytes) Set(hexStr string) error {
	*b = make(Bytes, hex.DecodedLen(len(hexStr)))
	if _, err := hex.Decode(*b, []byte(hexStr)); err != nil {
		return err
	}
	return nil
}

// String returns the hex encoded data of b.
func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

// UnmarshalJSON unmarshals a string of hex encoded data.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	if err := b.Set(hexStr); err != nil {
		return fmt.Errorf("%T: %w", b, err)
	}
	return nil
}

// MarshalJSON marshals b into hex encoded data.
func (b Bytes) MarshalJSON() ([]byte, error) {
	data := make([]byte, hex.EncodedLen(len(b))+2)
	hex.Encode(data[1:], b)
	data[0] = '"'
	data[len(data)-1] = '"'
	return data, nil
}
