package api

import (
	"context"

	"github.com/eventpilot/backend/auth"
)

type keyType string

const identityKey keyType = "identity"

func ctxWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity returns the authenticated caller, if any.
func ctxGetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
