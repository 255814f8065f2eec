package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type ComponentStore struct {
	CommonFields
}

func NewComponentStore(provider SqlProviderAchieve) *ComponentStore {
	repo := &ComponentStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_COMPONENT)
	repo.SetAllColumns("id", "name", "age_cohort_id", "domain_id", "created_at")
	return repo
}

func (s *ComponentStore) Create(ctx context.Context, data types.Component) error {
	query := sq.Insert(s.GetTable()).
		Columns("name", "age_cohort_id", "domain_id", "created_at").
		Values(data.Name, data.AgeCohortID, data.DomainID, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ComponentStore) Get(ctx context.Context, id int64) (*types.Component, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Component
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// List joins the cohort and domain names so the admin table renders
// without follow-up lookups. Zero ids skip their filter.
func (s *ComponentStore) List(ctx context.Context, ageCohortID, domainID int64) ([]types.ComponentDetail, error) {
	query := sq.Select(append(s.GetAllColumnsWithPrefix("c"),
		"a.name AS age_cohort_name", "d.name AS domain_name")...).
		From(s.GetTable() + " c").
		LeftJoin(types.TABLE_AGE_COHORT.Name() + " a ON a.id = c.age_cohort_id").
		LeftJoin(types.TABLE_DOMAIN.Name() + " d ON d.id = c.domain_id").
		OrderBy("c.id ASC")
	if ageCohortID > 0 {
		query = query.Where(sq.Eq{"c.age_cohort_id": ageCohortID})
	}
	if domainID > 0 {
		query = query.Where(sq.Eq{"c.domain_id": domainID})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ComponentDetail
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ComponentStore) Update(ctx context.Context, id int64, name string, ageCohortID, domainID int64) error {
	query := sq.Update(s.GetTable()).
		Set("name", name).
		Set("age_cohort_id", ageCohortID).
		Set("domain_id", domainID).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ComponentStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ComponentStore) DeleteByAgeCohort(ctx context.Context, ageCohortID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"age_cohort_id": ageCohortID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ComponentStore) DeleteByDomain(ctx context.Context, domainID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"domain_id": domainID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
