package fat

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

// Throwaway keys.
const (
	fs1Str  = "Fs1fR4dMNdyp1a6qYfkLFPJZUyRg1uFW3b6NEK9VaRELD4qALstq"
	fa1Str  = "FA2gCmih3PaSYRVMt1jLkdG4Xpo2koebUpQ6FpRRnqw5FfTSN2vW"
	fs2Str  = "Fs2jSmXgaysrqiADPmAvvb71NfAa9MqvXvRemozTE8LRc64hLqtf"
	fa2Str  = "FA3j68XNwKwvHXV2TKndxPpyCK3KrWTDyyfxzi8LwuM5XRuEmhy6"
	fa3Str  = "FA3rsxWx4WSN5Egj2ZxPoju1mzwfjBivTDMcEvoC1JSsqkddZPCB"
	sk1Str  = "sk12hDMpMzcm9XEdvcy77XwxYU57hpLoCMY1kHtKnyjdGWUpsAvXD"
	esStr   = "Es3w7m5KkGs97595YEiYouyjaJcsouHQr7cCLUrqKt6Y8LvWurAP"
	ecStr   = "EC3cQ1QnsE5rKWR1B5mzVHdTkAReK5kJwaQn5meXzU9wANyk7Aej"
	sk1RCD  = "01409429642ac92ec7b4788b1913768848963f5b04ef348c02e1f1befcc0e570fa"
	issuer  = "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904"
	tokenID = "test"
)

func TestParseSigner(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseSigner(fs1Str)
	require.NoError(t, err)
	assert.Equal(TransferSignerKind, s.Kind())
	assert.Equal(fa1Str, s.FAAddress().String())
	fs, _ := factom.NewFsAddress(fs1Str)
	assert.Equal(fs.RCD(), s.RCD())

	s, err = ParseSigner(sk1Str)
	require.NoError(t, err)
	assert.Equal(IssuerSignerKind, s.Kind())
	assert.Equal(sk1RCD, hex.EncodeToString(s.RCD()))
	assert.Equal(factom.FAAddress{}, s.FAAddress())

	msg := []byte("message")
	sig := s.Sign(msg)
	assert.True(ed25519.Verify(s.RCD()[1:], msg, sig))

	for _, keyStr := range []string{fa1Str, "Fs1fR4dMNdyp1a6qYfkLFPJZUyRg1uFW3b6NEK9VaRELD4qALstQ",
		"sk1", "", esStr} {
		_, err := ParseSigner(keyStr)
		assert.True(errors.Is(err, ErrInvalidParameter), keyStr)
	}

	assert.Equal("transfer signer (Fs)", TransferSignerKind.String())
	assert.Equal("issuer signer (sk1)", IssuerSignerKind.String())
	assert.Equal("unset signer", Signer{}.Kind().String())
}

func TestCoinbase(t *testing.T) {
	assert.Equal(t, "FA1zT4aFpEvcnPqPCigB3fvGu4Q4mTXY22iiuV69DqE1pNhdF2MC",
		Coinbase().String())

	adr, err := ParseAddress(fa1Str)
	require.NoError(t, err)
	assert.Equal(t, fa1Str, adr.String())
	_, err = ParseAddress(fs1Str)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
