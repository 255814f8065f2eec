package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type DomainStore struct {
	CommonFields
}

func NewDomainStore(provider SqlProviderAchieve) *DomainStore {
	repo := &DomainStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOMAIN)
	repo.SetAllColumns("id", "name", "created_at")
	return repo
}

func (s *DomainStore) Create(ctx context.Context, data types.Domain) error {
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

func (s *DomainStore) Get(ctx context.Context, id int64) (*types.Domain, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Domain
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DomainStore) GetByName(ctx context.Context, name string) (*types.Domain, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"name": name})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Domain
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DomainStore) List(ctx context.Context) ([]types.Domain, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Domain
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DomainStore) Update(ctx context.Context, id int64, name string) error {
	query := sq.Update(s.GetTable()).Set("name", name).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DomainStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
