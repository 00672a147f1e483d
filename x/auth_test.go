package x

import (
	"context"
	"testing"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/errors"
)

func TestChainAuth(t *testing.T) {
	owner := bridgetest.NewCondition()
	manager := bridgetest.NewCondition()
	stranger := bridgetest.NewCondition()

	ctxAuth := &bridgetest.CtxAuth{Key: "signers"}
	otherAuth := &bridgetest.CtxAuth{Key: "other"}
	signed := ctxAuth.SetConditions(context.Background(), owner, manager)

	cases := map[string]struct {
		ctx        bridge.Context
		auth       Authenticator
		want       []bridge.Address
		wantSigned bridge.Address
	}{
		"nobody signed": {
			ctx:  context.Background(),
			auth: ChainAuth(&bridgetest.Auth{}),
			want: []bridge.Address{},
		},
		"signers of all authenticators": {
			ctx: context.Background(),
			auth: ChainAuth(
				&bridgetest.Auth{Signer: manager},
				&bridgetest.Auth{Signer: owner}),
			want:       []bridge.Address{manager.Address(), owner.Address()},
			wantSigned: owner.Address(),
		},
		"signers stored in the context": {
			ctx:        signed,
			auth:       ChainAuth(ctxAuth),
			want:       []bridge.Address{owner.Address(), manager.Address()},
			wantSigned: manager.Address(),
		},
		"context key of another authenticator": {
			ctx:  signed,
			auth: ChainAuth(otherAuth),
			want: []bridge.Address{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, GetAddresses(tc.ctx, tc.auth))
			if tc.wantSigned != nil && !tc.auth.HasAddress(tc.ctx, tc.wantSigned) {
				t.Fatalf("%s must be authorized", tc.wantSigned)
			}
			if tc.auth.HasAddress(tc.ctx, stranger.Address()) {
				t.Fatal("stranger must not be authorized")
			}
		})
	}
}

func TestRequireAddress(t *testing.T) {
	owner := bridgetest.NewCondition()
	stranger := bridgetest.NewCondition()
	auth := &bridgetest.Auth{Signer: owner}
	ctx := context.Background()

	assert.Nil(t, RequireAddress(ctx, auth, owner.Address(), "owner"))
	assert.IsErr(t, errors.ErrUnauthorized, RequireAddress(ctx, auth, stranger.Address(), "owner"))
	assert.IsErr(t, errors.ErrUnauthorized, RequireAddress(ctx, auth, nil, "owner"))
}
