package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

// PlanLogic manages a teacher's saved plans. Every operation is scoped
// to the calling user, admins included.
type PlanLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewPlanLogic(ctx context.Context, core *core.Core) *PlanLogic {
	user, _ := InjectUserMeta(ctx)
	return &PlanLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}
}

func (l *PlanLogic) SavePlan(title, content, ageCohort, subject, playType string) (string, error) {
	if title == "" || content == "" {
		return "", errors.New("PlanLogic.SavePlan.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	id := utils.GenUniqIDStr()
	err := l.core.Store().PlanStore().Create(l.ctx, types.Plan{
		ID:        id,
		UserID:    l.user.UserID,
		Title:     title,
		Content:   content,
		AgeCohort: ageCohort,
		Subject:   subject,
		PlayType:  playType,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("PlanLogic.SavePlan.PlanStore.Create", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Saved plan '%s'", title))
	return id, nil
}

func (l *PlanLogic) GetPlan(id string) (*types.Plan, error) {
	plan, err := l.core.Store().PlanStore().Get(l.ctx, l.user.UserID, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("PlanLogic.GetPlan.PlanStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if plan == nil {
		return nil, errors.New("PlanLogic.GetPlan.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return plan, nil
}

func (l *PlanLogic) ListPlans(page, pageSize uint64) ([]types.Plan, int64, error) {
	list, err := l.core.Store().PlanStore().List(l.ctx, l.user.UserID, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("PlanLogic.ListPlans.PlanStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().PlanStore().Total(l.ctx, l.user.UserID)
	if err != nil {
		return nil, 0, errors.New("PlanLogic.ListPlans.PlanStore.Total", i18n.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

func (l *PlanLogic) DeletePlan(id string) error {
	// Lookup first so a cross-user id reads as not found, not as success.
	if _, err := l.GetPlan(id); err != nil {
		return err
	}

	if err := l.core.Store().PlanStore().Delete(l.ctx, l.user.UserID, id); err != nil {
		return errors.New("PlanLogic.DeletePlan.PlanStore.Delete", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Deleted plan ID %s", id))
	return nil
}

// FeedbackLogic records thumbs up/down verdicts on generated guides.
type FeedbackLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewFeedbackLogic(ctx context.Context, core *core.Core) *FeedbackLogic {
	user, _ := InjectUserMeta(ctx)
	return &FeedbackLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}
}

func (l *FeedbackLogic) Submit(rating int, selections, generatedOutput json.RawMessage) error {
	if rating != types.FEEDBACK_RATING_GOOD && rating != types.FEEDBACK_RATING_BAD {
		return errors.New("FeedbackLogic.Submit.rating", i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("rating %d", rating)).Code(http.StatusBadRequest)
	}

	err := l.core.Store().FeedbackLogStore().Create(l.ctx, types.FeedbackLog{
		UserID:          l.user.UserID,
		Rating:          rating,
		Selections:      selections,
		GeneratedOutput: generatedOutput,
		CreatedAt:       time.Now().Unix(),
	})
	if err != nil {
		return errors.New("FeedbackLogic.Submit.FeedbackLogStore.Create", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Submitted feedback (Rating: %d)", rating))
	return nil
}
