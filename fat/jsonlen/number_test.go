package jsonlen

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberTests = []int64{0, 1, 9, 10, 99, 100, 12345, 999999999, 1000000000,
	math.MaxInt32, math.MaxInt64}

func TestUint64(t *testing.T) {
	ds := []uint64{math.MaxUint64, math.MaxUint64 / 10, 1e19 - 1}
	for _, d := range numberTests {
		ds = append(ds, uint64(d))
	}
	for _, d := range ds {
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, len(data), Uint64(d), "%v", d)
	}
}

func TestInt64(t *testing.T) {
	ds := []int64{math.MinInt64, math.MinInt64 + 1}
	for _, d := range numberTests {
		ds = append(ds, d, -d)
	}
	for _, d := range ds {
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, len(data), Int64(d), "%v", d)
	}
}
