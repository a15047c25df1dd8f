// context.go
//
// jobtrack - job application tracking data service
//

package graphql

import (
	"context"
	"errors"
)

type contextKey int

const actingUserKey contextKey = iota

// WithActingUser stamps the session user's id on a resolver context.
func WithActingUser(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, actingUserKey, userID)
}

// ActingUser reads the session user's id from a resolver context. Mutations
// that guard on ownership fail when no user was stamped.
func ActingUser(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(actingUserKey).(uint64)
	if !ok || userID == 0 {
		return 0, errors.New("no acting user in context")
	}
	return userID, nil
}
