package bridge

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge/errors"
)

// Persistent is anything that can be stored or sent over the wire. All
// models and messages are protobuf messages.
type Persistent interface {
	proto.Message
}

// Marshal serializes given object using its protobuf declaration.
func Marshal(p Persistent) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", p, err)
	}
	return raw, nil
}

// Unmarshal deserializes protobuf data into given object.
func Unmarshal(raw []byte, p Persistent) error {
	if err := proto.Unmarshal(raw, p); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", p, err)
	}
	return nil
}

// Msg is message for the ledger to take an action (make a state transition).
// It is just the request, and must be validated by the Handlers. All
// authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the Router to
	// locate the proper Handler. Msg should be created alongside the
	// Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the values is invalid.
	Validate() error
}

// Tx represent the data sent from the user to the ledger. It includes the
// actual message, along with information needed to authenticate the sender
// (cryptographic signatures), and anything else needed to pass through
// middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg.Path() != destination.Path() {
		return errors.Wrapf(errors.ErrType, "want %q message, got %q", destination.Path(), msg.Path())
	}
	raw, err := Marshal(msg)
	if err != nil {
		return err
	}
	if err := Unmarshal(raw, destination); err != nil {
		return err
	}
	if err := destination.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)
