package v1

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

// AdminLogic covers account management and the audit views. The router
// only reaches it behind the admin role check.
type AdminLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewAdminLogic(ctx context.Context, core *core.Core) *AdminLogic {
	user, _ := InjectUserMeta(ctx)
	return &AdminLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}
}

// CreateTeacher registers a teacher account on their behalf and returns
// the derived temporary password to hand over out of band.
func (l *AdminLogic) CreateTeacher(firstName, lastName, email, city, country string) (string, error) {
	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("AdminLogic.CreateTeacher.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return "", errors.New("AdminLogic.CreateTeacher.exist", i18n.ERROR_EMAIL_ALREADY_REGISTED, nil).Code(http.StatusConflict)
	}

	tempPassword := utils.TempPassword(firstName, email)
	hashed, err := hashPassword(tempPassword)
	if err != nil {
		return "", errors.New("AdminLogic.CreateTeacher.hashPassword", i18n.ERROR_INTERNAL, err)
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
		return "", errors.New("AdminLogic.CreateTeacher.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin created teacher: %s", email))
	return tempPassword, nil
}

func (l *AdminLogic) ListUsers(page, pageSize uint64) ([]types.User, int64, error) {
	list, err := l.core.Store().UserStore().List(l.ctx, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("AdminLogic.ListUsers.UserStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().UserStore().Total(l.ctx)
	if err != nil {
		return nil, 0, errors.New("AdminLogic.ListUsers.UserStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

// DeleteUser removes the account and revokes its sessions. Self-delete
// is rejected so the last admin cannot lock everyone out by accident.
func (l *AdminLogic) DeleteUser(id string) error {
	if id == l.user.UserID {
		return errors.New("AdminLogic.DeleteUser.self", i18n.ERROR_FORBIDDEN, nil).Code(http.StatusForbidden)
	}

	user, err := l.core.Store().UserStore().GetUser(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("AdminLogic.DeleteUser.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	if user == nil {
		return errors.New("AdminLogic.DeleteUser.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().AccessTokenStore().DeleteUserTokens(ctx, id); err != nil {
			return errors.New("AdminLogic.DeleteUser.AccessTokenStore.DeleteUserTokens", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().UserStore().Delete(ctx, id); err != nil {
			return errors.New("AdminLogic.DeleteUser.UserStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted user: %s", user.Email))
	return nil
}

func (l *AdminLogic) ListActivityLogs(page, pageSize uint64) ([]types.ActivityLogDetail, int64, error) {
	list, err := l.core.Store().ActivityLogStore().List(l.ctx, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("AdminLogic.ListActivityLogs.ActivityLogStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ActivityLogStore().Total(l.ctx)
	if err != nil {
		return nil, 0, errors.New("AdminLogic.ListActivityLogs.ActivityLogStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

func (l *AdminLogic) ListFeedbackLogs(page, pageSize uint64) ([]types.FeedbackLog, int64, error) {
	list, err := l.core.Store().FeedbackLogStore().List(l.ctx, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("AdminLogic.ListFeedbackLogs.FeedbackLogStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().FeedbackLogStore().Total(l.ctx)
	if err != nil {
		return nil, 0, errors.New("AdminLogic.ListFeedbackLogs.FeedbackLogStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}
