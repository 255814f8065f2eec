package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

const minPasswordLength = 6

// logic for unlogin
type UserLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewUserLogic(ctx context.Context, core *core.Core) *UserLogic {
	return &UserLogic{
		ctx:  ctx,
		core: core,
	}
}

func hashPassword(password string) (string, error) {
	raw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func checkPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// logActivity records an audit line best-effort. A failed audit write is
// logged, never surfaced to the caller.
func logActivity(ctx context.Context, core *core.Core, userID, action string) {
	err := core.Store().ActivityLogStore().Create(ctx, types.ActivityLog{
		UserID:    userID,
		Action:    action,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		slog.Error("failed to write activity log", slog.String("user_id", userID), slog.String("action", action), slog.Any("error", err))
	}
}

// Register creates a teacher account and hands back a derived temporary
// password. The account is flagged to force a password change on first
// login.
func (l *UserLogic) Register(firstName, lastName, email, city, country string) (string, error) {
	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("UserLogic.Register.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return "", errors.New("UserLogic.Register.exist", i18n.ERROR_EMAIL_ALREADY_REGISTED, nil).Code(http.StatusConflict)
	}

	tempPassword := utils.TempPassword(firstName, email)
	hashed, err := hashPassword(tempPassword)
	if err != nil {
		return "", errors.New("UserLogic.Register.hashPassword", i18n.ERROR_INTERNAL, err)
	}

	err = l.core.Store().UserStore().Create(l.ctx, types.User{
		ID:                  utils.GenUniqIDStr(),
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		Password:            hashed,
		City:                city,
		Country:             country,
		Role:                types.USER_ROLE_TEACHER,
		ForcePasswordChange: true,
		CreatedAt:           time.Now().Unix(),
		UpdatedAt:           time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("UserLogic.Register.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return tempPassword, nil
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

func (l *UserLogic) Login(email, password string) (*LoginResult, error) {
	user, err := l.core.Store().UserStore().GetByEmail(l.ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("UserLogic.Login.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}

	if user == nil || !checkPassword(user.Password, password) {
		return nil, errors.New("UserLogic.Login.Password.check", i18n.ERROR_INVALID_ACCOUNT, nil).Code(http.StatusUnauthorized)
	}

	token := utils.RandomStr(64)
	err = l.core.Store().AccessTokenStore().Create(l.ctx, types.AccessToken{
		UserID:    user.ID,
		Token:     token,
		Info:      "login",
		ExpiresAt: time.Now().Add(l.core.TokenTTL()).Unix(),
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.New("UserLogic.Login.AccessTokenStore.Create", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, user.ID, "User logged in")

	return &LoginResult{Token: token, User: user}, nil
}

// AuthedUserLogic covers operations on the caller's own account.
type AuthedUserLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewAuthedUserLogic(ctx context.Context, core *core.Core) (*AuthedUserLogic, error) {
	user, ok := InjectUserMeta(ctx)
	if !ok {
		return nil, errors.New("NewAuthedUserLogic.InjectUserMeta", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}
	return &AuthedUserLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}, nil
}

func (l *AuthedUserLogic) GetUserInfo() types.UserTokenMeta {
	return l.user
}

func (l *AuthedUserLogic) Profile() (*types.User, error) {
	user, err := l.core.Store().UserStore().GetUser(l.ctx, l.user.UserID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("AuthedUserLogic.Profile.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	if user == nil {
		return nil, errors.New("AuthedUserLogic.Profile.UserStore.GetUser.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return user, nil
}

func (l *AuthedUserLogic) UpdateProfile(firstName, lastName, city, country string) error {
	err := l.core.Store().UserStore().UpdateProfile(l.ctx, l.user.UserID, firstName, lastName, city, country)
	if err != nil {
		return errors.New("AuthedUserLogic.UpdateProfile.UserStore.UpdateProfile", i18n.ERROR_INTERNAL, err)
	}
	logActivity(l.ctx, l.core, l.user.UserID, "User updated profile")
	return nil
}

// ChangePassword replaces the caller's password and clears the
// force-change flag set by registration.
func (l *AuthedUserLogic) ChangePassword(newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return errors.New("AuthedUserLogic.ChangePassword.length", i18n.ERROR_PASSWORD_TOO_SHORT, fmt.Errorf("password length %d", len(newPassword))).Code(http.StatusBadRequest)
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return errors.New("AuthedUserLogic.ChangePassword.hashPassword", i18n.ERROR_INTERNAL, err)
	}

	if err = l.core.Store().UserStore().UpdatePassword(l.ctx, l.user.UserID, hashed, false); err != nil {
		return errors.New("AuthedUserLogic.ChangePassword.UserStore.UpdatePassword", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, "User changed password")
	return nil
}
