package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type ActivityLogStore struct {
	CommonFields
}

func NewActivityLogStore(provider SqlProviderAchieve) *ActivityLogStore {
	repo := &ActivityLogStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ACTIVITY_LOG)
	repo.SetAllColumns("id", "user_id", "action", "created_at")
	return repo
}

func (s *ActivityLogStore) Create(ctx context.Context, data types.ActivityLog) error {
	query := sq.Insert(s.GetTable()).
		Columns("user_id", "action", "created_at").
		Values(data.UserID, data.Action, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List joins the user email for the admin audit view. Logs of deleted
// users keep their rows with a blank email.
func (s *ActivityLogStore) List(ctx context.Context, page, pageSize uint64) ([]types.ActivityLogDetail, error) {
	query := sq.Select(append(s.GetAllColumnsWithPrefix("l"),
		"COALESCE(u.email, '') AS user_email")...).
		From(s.GetTable() + " l").
		LeftJoin(types.TABLE_USER.Name() + " u ON u.id = l.user_id").
		OrderBy("l.created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ActivityLogDetail
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ActivityLogStore) Total(ctx context.Context) (int64, error) {
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
