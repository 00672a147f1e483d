package lockbox

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge/errors"
)

// State is the lifecycle stage of a lock-box. A lock-box is created Open
// and moves once, either to Closed or to Expired.
type State int32

const (
	Invalid State = 0
	Open    State = 1
	Closed  State = 2
	Expired State = 3
)

var stateName = map[int32]string{
	0: "STATE_INVALID",
	1: "STATE_OPEN",
	2: "STATE_CLOSED",
	3: "STATE_EXPIRED",
}

var stateValue = map[string]int32{
	"STATE_INVALID": 0,
	"STATE_OPEN":    1,
	"STATE_CLOSED":  2,
	"STATE_EXPIRED": 3,
}

func init() {
	proto.RegisterEnum("lockbox.State", stateName, stateValue)
}

func (s State) String() string {
	if n, ok := stateName[int32(s)]; ok {
		return n
	}
	return fmt.Sprintf("STATE_%d", int32(s))
}

// MarshalJSON encodes the state by its name.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// requireOpen returns the error matching the terminal state of a lock-box,
// or nil if it is still open.
func requireOpen(s State) error {
	switch s {
	case Open:
		return nil
	case Closed:
		return ErrAlreadyClosed
	case Expired:
		return ErrAlreadyExpired
	default:
		return errors.Wrapf(errors.ErrState, "unknown state %d", s)
	}
}
