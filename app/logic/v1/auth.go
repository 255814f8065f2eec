package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	return &AuthLogic{
		ctx:  ctx,
		core: core,
	}
}

func tokenCacheKey(token string) string {
	return "user:token:" + utils.MD5(token)
}

// ValidateToken resolves a bearer token to its user claims. The cache is
// consulted first; a DB hit refreshes the cache entry until the token's
// own expiry.
func (l *AuthLogic) ValidateToken(token string) (*types.UserTokenMeta, error) {
	if token == "" {
		return nil, errors.New("AuthLogic.ValidateToken.empty", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	cacheKey := tokenCacheKey(token)
	if cached, err := l.core.Cache().Get(l.ctx, cacheKey); err == nil && cached != "" {
		var meta types.UserTokenMeta
		if err = json.Unmarshal([]byte(cached), &meta); err == nil {
			if meta.ExpiresAt > time.Now().Unix() {
				return &meta, nil
			}
		}
	}

	data, err := l.core.Store().AccessTokenStore().GetAccessToken(l.ctx, token)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.ValidateToken.AccessTokenStore.GetAccessToken", i18n.ERROR_INTERNAL, err)
	}

	if data == nil || data.ExpiresAt <= time.Now().Unix() {
		return nil, errors.New("AuthLogic.ValidateToken.expired", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	user, err := l.core.Store().UserStore().GetUser(l.ctx, data.UserID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthLogic.ValidateToken.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	if user == nil {
		return nil, errors.New("AuthLogic.ValidateToken.UserStore.GetUser.nil", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	meta := types.UserTokenMeta{
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: data.ExpiresAt,
	}

	if raw, err := json.Marshal(meta); err == nil {
		ttl := time.Until(time.Unix(meta.ExpiresAt, 0))
		if ttl > 0 {
			_ = l.core.Cache().SetEx(l.ctx, cacheKey, string(raw), ttl)
		}
	}

	return &meta, nil
}

// Logout revokes the presented token and drops its cache entry.
func (l *AuthLogic) Logout(token string) error {
	if err := l.core.Store().AccessTokenStore().Delete(l.ctx, token); err != nil {
		return errors.New("AuthLogic.Logout.AccessTokenStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	_ = l.core.Cache().Del(l.ctx, tokenCacheKey(token))

	if meta, ok := InjectUserMeta(l.ctx); ok {
		logActivity(l.ctx, l.core, meta.UserID, "User logged out")
	}
	return nil
}
