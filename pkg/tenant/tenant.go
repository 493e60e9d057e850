// Package tenant carries the resolved tenant through request contexts.
package tenant

import (
	apperrors "barberbook/pkg/errors"
	"context"
	"regexp"
)

type ctxKey struct{}

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,63}$`)

func WithTenant(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Require returns the tenant of ctx or an error when none was resolved.
func Require(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", apperrors.Unauthorized("tenant could not be resolved")
	}
	return id, nil
}

// ValidID reports whether id is an acceptable tenant identifier.
func ValidID(id string) bool {
	return validID.MatchString(id)
}
