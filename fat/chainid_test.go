package fat

import (
	"errors"
	"testing"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validIdentityChainID = *factom.NewBytes32FromString(
	"88888807e4f3bbb9a2b229645ab6d2f184224190f83e78761674c2362aca4425")

func validNameIDs() []factom.Bytes {
	return []factom.Bytes{
		factom.Bytes("token"),
		factom.Bytes("valid"),
		factom.Bytes("issuer"),
		validIdentityChainID[:],
	}
}

func TestNameIDs(t *testing.T) {
	nameIDs := NameIDs("valid", validIdentityChainID)
	assert.Equal(t, validNameIDs(), nameIDs)
}

var chainIDTests = []struct {
	TokenID  string
	IssuerID string
	ChainID  string
}{{
	TokenID:  "test",
	IssuerID: "88888807e4f3bbb9a2b229645ab6d2f184224190f83e78761674c2362aca4425",
	ChainID:  "b54c4310530dc4dd361101644fa55cb10aec561e7874a7b786ea3b66f2c6fdfb",
}, {
	TokenID:  "test",
	IssuerID: "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904",
	ChainID:  "145d5207a1ca2978e2a1cb43c97d538cd516d65cd5d14579549664bfecd80296",
}}

func TestChainID(t *testing.T) {
	for _, test := range chainIDTests {
		issuerChainID, err := ParseIssuerID(test.IssuerID)
		require.NoError(t, err)
		assert.Equal(t, test.ChainID, ChainID(test.TokenID, issuerChainID).String())
	}
}

func invalidNameIDs(i int) []factom.Bytes {
	n := validNameIDs()
	n[i] = factom.Bytes{}
	return n
}

var validNameIDsTests = []struct {
	Name    string
	NameIDs []factom.Bytes
	Valid   bool
}{{
	Name:    "valid",
	Valid:   true,
	NameIDs: validNameIDs(),
}, {
	Name:    "invalid length (short)",
	NameIDs: validNameIDs()[0:3],
}, {
	Name:    "invalid length (long)",
	NameIDs: append(validNameIDs(), factom.Bytes{}),
}, {
	Name:    "invalid ExtID",
	NameIDs: invalidNameIDs(0),
}, {
	Name:    "invalid ExtID",
	NameIDs: invalidNameIDs(1),
}, {
	Name:    "invalid ExtID",
	NameIDs: invalidNameIDs(2),
}, {
	Name:    "invalid ExtID",
	NameIDs: invalidNameIDs(3),
}}

func TestValidTokenNameIDs(t *testing.T) {
	for _, test := range validNameIDsTests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Valid, ValidTokenNameIDs(test.NameIDs))
		})
	}
}

var parseIssuerIDTests = []struct {
	Name     string
	IssuerID string
	Valid    bool
}{{
	Name:     "valid",
	IssuerID: "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904",
	Valid:    true,
}, {
	Name:     "wrong prefix",
	IssuerID: "188888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904",
}, {
	Name:     "too short",
	IssuerID: "188888412343124123412341234",
}, {
	Name:     "not hex",
	IssuerID: "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a09zz",
}}

func TestParseIssuerID(t *testing.T) {
	for _, test := range parseIssuerIDTests {
		t.Run(test.Name, func(t *testing.T) {
			chainID, err := ParseIssuerID(test.IssuerID)
			if !test.Valid {
				assert.True(t, errors.Is(err, ErrInvalidParameter), err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.IssuerID, chainID.String())
			assert.True(t, ValidIdentityChainID(chainID[:]))
		})
	}
}

func TestParseChainID(t *testing.T) {
	_, err := ParseChainID("145d")
	assert.True(t, errors.Is(err, ErrInvalidChainID))
	chainID, err := ParseChainID(chainIDTests[1].ChainID)
	require.NoError(t, err)
	assert.Equal(t, chainIDTests[1].ChainID, chainID.String())
}
