package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type AgeCohortStore struct {
	CommonFields
}

func NewAgeCohortStore(provider SqlProviderAchieve) *AgeCohortStore {
	repo := &AgeCohortStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_AGE_COHORT)
	repo.SetAllColumns("id", "name", "created_at")
	return repo
}

func (s *AgeCohortStore) Create(ctx context.Context, data types.AgeCohort) error {
	query := sq.Insert(s.GetTable()).
		Columns("name", "created_at").
		Values(data.Name, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *AgeCohortStore) Get(ctx context.Context, id int64) (*types.AgeCohort, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.AgeCohort
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AgeCohortStore) GetByName(ctx context.Context, name string) (*types.AgeCohort, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"name": name})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.AgeCohort
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AgeCohortStore) List(ctx context.Context) ([]types.AgeCohort, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.AgeCohort
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AgeCohortStore) Update(ctx context.Context, id int64, name string) error {
	query := sq.Update(s.GetTable()).Set("name", name).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *AgeCohortStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
