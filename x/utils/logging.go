package utils

import (
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Logging writes one entry per transaction with its message path, duration
// and result code. Failed deliveries are errors, failed checks only info.
// Successful checks are logged at the debug level.
type Logging struct{}

var _ bridge.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Checker) (*bridge.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	entry := txEntry{call: "check", start: start, err: err}
	if err == nil {
		entry.log = res.Log
	}
	entry.write(ctx, tx)
	return res, err
}

func (Logging) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (*bridge.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	entry := txEntry{call: "deliver", start: start, err: err}
	if err == nil {
		entry.log = res.Log
	}
	entry.write(ctx, tx)
	return res, err
}

type txEntry struct {
	call  string
	start time.Time
	log   string
	err   error
}

func (e txEntry) write(ctx bridge.Context, tx bridge.Tx) {
	logger := bridge.GetLogger(ctx).With(
		"call", e.call,
		"duration", time.Since(e.start)/time.Microsecond,
	)
	if tx != nil {
		logger = logger.With("path", bridge.GetPath(tx))
	}

	if e.err == nil {
		if e.call == "check" {
			logger.Debug(e.log)
		} else {
			logger.Info(e.log)
		}
		return
	}
	code, _ := errors.Info(e.err, false)
	logger = logger.With("err", e.err, "code", code)
	if e.call == "check" {
		logger.Info(e.log)
	} else {
		logger.Error(e.log)
	}
}
