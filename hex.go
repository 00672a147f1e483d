package bridge

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/bridge/errors"
)

// HexBytes is binary data that is represented in JSON as a hex string.
// Lock-box ids, hash locks and secrets are declared with it.
type HexBytes []byte

// MarshalJSON encodes the data as an upper case hex string.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return marshalHex(h)
}

// UnmarshalJSON decodes a hex string.
func (h *HexBytes) UnmarshalJSON(raw []byte) error {
	return unmarshalHex((*[]byte)(h), raw)
}

// String returns the upper case hex representation.
func (h HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}

// ParseHexBytes decodes a hex string, accepting an optional 0x prefix.
func ParseHexBytes(s string) (HexBytes, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	return b, nil
}

func unmarshalHex(dst *[]byte, src []byte) error {
	var s string
	if err := json.Unmarshal(src, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hex must be a string")
	}
	b, err := ParseHexBytes(s)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}
