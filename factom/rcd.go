package factom

import (
	"crypto/sha256"

	"golang.org/x/crypto/ed25519"
)

const (
	// RCDType is the magic number identifying the currently accepted RCD.
	RCDType byte = 0x01
	// RCDSize is the size of the RCD.
	RCDSize = ed25519.PublicKeySize + 1
	// SignatureSize is the size of the ed25519 signatures.
	SignatureSize = ed25519.SignatureSize
)

// RCDSigner is implemented by the private key types that can sign a FAT
// entry: FsAddress and SK1Key.
type RCDSigner interface {
	// RCD returns the RCD corresponding to the private key.
	RCD() []byte

	// PrivateKey returns the ed25519.PrivateKey which can be used for
	// signing data.
	PrivateKey() ed25519.PrivateKey
	// PublicKey returns the ed25519.PublicKey which can be used for
	// verifying signatures.
	PublicKey() ed25519.PublicKey
}

func newRCD(pub ed25519.PublicKey) []byte {
	rcd := make([]byte, RCDSize)
	rcd[0] = RCDType
	copy(rcd[1:], pub)
	return rcd
}

// ValidRCD returns true if rcd is a type 0x01 RCD whose public key verifies
// sig over msg.
func ValidRCD(rcd, msg, sig []byte) bool {
	if len(rcd) != RCDSize || rcd[0] != RCDType || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(rcd[1:]), msg, sig)
}

// sha256( sha256( data ) )
func sha256d(data []byte) [sha256.Size]byte {
	hash := sha256.Sum256(data)
	return sha256.Sum256(hash[:])
}
