package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := bridge.WithLogger(context.Background(), logger)

	ok := &bridgetest.Handler{DeliverResult: bridge.DeliverResult{Log: "all good"}}
	_, err := NewLogging().Deliver(ctx, nil, nil, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "all good")
	assert.Contains(t, buf.String(), "duration=")

	buf.Reset()
	fail := &bridgetest.Handler{DeliverErr: errors.ErrUnauthorized.New("nope")}
	_, err = NewLogging().Deliver(ctx, nil, nil, fail)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "code=2")

	// Successful checks are logged only at the debug level.
	buf.Reset()
	quiet := bridge.WithLogger(context.Background(), log.NewFilter(logger, log.AllowInfo()))
	_, err = NewLogging().Check(quiet, nil, nil, &bridgetest.Handler{})
	assert.NoError(t, err)
	assert.Equal(t, "", buf.String())
}
