package factom

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Factom-Asset-Tokens/base58"
)

// encodedPayloadLen is the length of a base58check encoded payload without
// its human readable prefix.
const encodedPayloadLen = 50

// payload is the 32 byte body shared by the address and identity key types.
// The types differ only in their prefix.
type payload [sha256.Size]byte

// StringPrefix returns the base58check encoding of pld under prefix.
func (pld payload) StringPrefix(prefix []byte) string {
	return base58.CheckEncode(pld[:], prefix...)
}

func (pld payload) MarshalJSONPrefix(prefix []byte) ([]byte, error) {
	return json.Marshal(pld.StringPrefix(prefix))
}

// SetPrefix decodes str, which must begin with the human readable prefix,
// into pld. pld is unchanged on error.
func (pld *payload) SetPrefix(str, prefix string) error {
	if len(str) != encodedPayloadLen+len(prefix) {
		return fmt.Errorf("invalid length: %v", len(str))
	}
	if !strings.HasPrefix(str, prefix) {
		return fmt.Errorf("invalid prefix: expected %q", prefix)
	}
	data, _, err := base58.CheckDecode(str, len(prefix))
	if err != nil {
		return err
	}
	if len(data) != len(pld) {
		return fmt.Errorf("invalid payload length: %v", len(data))
	}
	copy(pld[:], data)
	return nil
}

func (pld *payload) UnmarshalJSONPrefix(data []byte, prefix string) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return pld.SetPrefix(str, prefix)
}
