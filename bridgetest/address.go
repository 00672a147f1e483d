package bridgetest

import (
	"testing"

	"github.com/iov-one/bridge"
)

// ParseAddress decodes a hex or bech32 address and fails the test on error.
func ParseAddress(t testing.TB, s string) bridge.Address {
	t.Helper()
	addr, err := bridge.ParseAddress(s)
	if err != nil {
		t.Fatalf("parse address %q: %s", s, err)
	}
	return addr
}
