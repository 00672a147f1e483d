package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexBytesJSON(t *testing.T) {
	cases := map[string]struct {
		orig    HexBytes
		ser     string
		invalid string
	}{
		"two bytes":  {HexBytes{0x01, 0x02}, `"0102"`, `"012"`},
		"upper case": {HexBytes{0xFF, 0x14, 0x56}, `"FF1456"`, `FF1456`},
		"empty":      {HexBytes{}, `""`, `"`},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := json.Marshal(tc.orig)
			require.NoError(t, err)
			assert.Equal(t, tc.ser, string(bz))

			var in HexBytes
			require.NoError(t, json.Unmarshal([]byte(tc.ser), &in))
			assert.Equal(t, tc.orig, in)

			// failure returns error and doesn't affect input
			err = json.Unmarshal([]byte(tc.invalid), &in)
			assert.Error(t, err)
			assert.Equal(t, tc.orig, in)
		})
	}
}

func TestParseHexBytes(t *testing.T) {
	b, err := ParseHexBytes("0xcafe")
	require.NoError(t, err)
	assert.Equal(t, HexBytes{0xCA, 0xFE}, b)
	assert.Equal(t, "CAFE", b.String())

	_, err = ParseHexBytes("xyz")
	assert.Error(t, err)
}
