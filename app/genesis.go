package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Genesis file format. Chain id is fixed for the lifetime of a ledger and
// the app state is passed to every extension initializer.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState bridge.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	if !bridge.IsValidChainID(gen.ChainID) {
		return gen, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return gen, nil
}
