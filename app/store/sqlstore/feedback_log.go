package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type FeedbackLogStore struct {
	CommonFields
}

func NewFeedbackLogStore(provider SqlProviderAchieve) *FeedbackLogStore {
	repo := &FeedbackLogStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_FEEDBACK_LOG)
	repo.SetAllColumns("id", "user_id", "rating", "selections", "generated_output", "created_at")
	return repo
}

func (s *FeedbackLogStore) Create(ctx context.Context, data types.FeedbackLog) error {
	query := sq.Insert(s.GetTable()).
		Columns("user_id", "rating", "selections", "generated_output", "created_at").
		Values(data.UserID, data.Rating, data.Selections, data.GeneratedOutput, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *FeedbackLogStore) List(ctx context.Context, page, pageSize uint64) ([]types.FeedbackLog, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.FeedbackLog
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *FeedbackLogStore) Total(ctx context.Context) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}
