package v1

import (
	"context"

	"github.com/sproutplan/sproutplan/pkg/types"
)

const (
	USER_CONTEXT_KEY = "__sprout.user"
	LANGUAGE_KEY     = "__sprout.accept_language"
)

// InjectUserMeta gets the resolved token claims from context.
func InjectUserMeta(ctx context.Context) (types.UserTokenMeta, bool) {
	val, ok := ctx.Value(USER_CONTEXT_KEY).(types.UserTokenMeta)
	return val, ok
}

func InjectLanguage(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(LANGUAGE_KEY).(string)
	return val, ok
}
