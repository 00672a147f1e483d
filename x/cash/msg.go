package cash

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

const maxMemoSize int = 128

var _ bridge.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", s.Metadata.Validate())
	if s.Amount.IsZero() {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrAmount, "non-positive"))
	} else {
		err = errors.AppendField(err, "Amount", s.Amount.Validate())
	}
	err = errors.AppendField(err, "Src", s.Src.Validate())
	err = errors.AppendField(err, "Dest", s.Dest.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}
