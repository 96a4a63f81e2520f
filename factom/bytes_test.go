package factom_test

import (
	"strings"
	"testing"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bytes32UnmarshalJSONTests = []struct {
	Name  string
	JSON  string
	Error string
}{{
	Name: "valid",
	JSON: `"` + strings.Repeat("0a", 32) + `"`,
}, {
	Name:  "invalid type",
	JSON:  `{}`,
	Error: "json: cannot unmarshal object into Go value of type string",
}, {
	Name:  "invalid length",
	JSON:  `"0a0b"`,
	Error: "*factom.Bytes32: invalid length",
}, {
	Name:  "invalid symbol",
	JSON:  `"` + strings.Repeat("0x", 32) + `"`,
	Error: "*factom.Bytes32: encoding/hex: invalid byte: U+0078 'x'",
}}

func TestBytes32UnmarshalJSON(t *testing.T) {
	for _, test := range bytes32UnmarshalJSONTests {
		t.Run(test.Name, func(t *testing.T) {
			var b32 factom.Bytes32
			err := b32.UnmarshalJSON([]byte(test.JSON))
			if len(test.Error) > 0 {
				assert.EqualError(t, err, test.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.Repeat("0a", 32), b32.String())
		})
	}
}

func TestBytes32MarshalJSON(t *testing.T) {
	b := []byte{0x01}
	b32 := factom.NewBytes32(b)
	assert := assert.New(t)
	assert.Equal(b32[0], b[0])
	assert.Equal(b32[31], byte(0))
	assert.False(b32.IsZero())
	assert.Equal(
		"0100000000000000000000000000000000000000000000000000000000000000",
		b32.String())
	data, err := b32.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(
		`"0100000000000000000000000000000000000000000000000000000000000000"`,
		string(data))
}

func TestBytesUnmarshalJSON(t *testing.T) {
	var b factom.Bytes
	assert.EqualError(t, b.UnmarshalJSON([]byte(`"0x"`)),
		"*factom.Bytes: encoding/hex: invalid byte: U+0078 'x'")
	require.NoError(t, b.UnmarshalJSON([]byte(`"0102ff"`)))
	assert.Equal(t, factom.Bytes{0x01, 0x02, 0xff}, b)
}

func TestBytesMarshalJSON(t *testing.T) {
	b := factom.Bytes{0x01}
	assert := assert.New(t)
	assert.Equal("01", b.String())
	data, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(`"01"`, string(data))
}
