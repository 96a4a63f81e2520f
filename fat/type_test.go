package fat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var typeTests = []struct {
	Name  string
	JSON  string
	Type  Type
	Error string
}{{
	Name: "FAT-0",
	JSON: `"FAT-0"`,
	Type: TypeFAT0,
}, {
	Name: "FAT-1",
	JSON: `"FAT-1"`,
	Type: TypeFAT1,
}, {
	Name:  "unsupported",
	JSON:  `"FAT-2"`,
	Error: "*fat.Type: unsupported: FAT-2",
}, {
	Name:  "invalid format",
	JSON:  `"FAT0"`,
	Error: "*fat.Type: invalid format",
}, {
	Name:  "not a string",
	JSON:  `0`,
	Error: "*fat.Type: expected JSON string",
}}

func TestType(t *testing.T) {
	for _, test := range typeTests {
		t.Run(test.Name, func(t *testing.T) {
			var typ Type
			err := json.Unmarshal([]byte(test.JSON), &typ)
			if len(test.Error) > 0 {
				assert.EqualError(t, err, test.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.Type, typ)
			data, err := json.Marshal(typ)
			require.NoError(t, err)
			assert.Equal(t, test.JSON, string(data))
		})
	}
	_, err := json.Marshal(Type(5))
	assert.Error(t, err)
	assert.Equal(t, "invalid fat.Type: 5", Type(5).String())
}
