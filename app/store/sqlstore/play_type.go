package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type PlayTypeStore struct {
	CommonFields
}

func NewPlayTypeStore(provider SqlProviderAchieve) *PlayTypeStore {
	repo := &PlayTypeStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_PLAY_TYPE)
	repo.SetAllColumns("id", "name", "description", "context", "created_at")
	return repo
}

// Create inserts the play type and returns the generated id so the tag
// links can be written in the same transaction.
func (s *PlayTypeStore) Create(ctx context.Context, data types.PlayType) (int64, error) {
	query := sq.Insert(s.GetTable()).
		Columns("name", "description", "context", "created_at").
		Values(data.Name, data.Description, data.Context, data.CreatedAt).
		Suffix("RETURNING id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var id int64
	if err = s.GetMaster(ctx).QueryRowx(queryString, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PlayTypeStore) Get(ctx context.Context, id int64) (*types.PlayType, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.PlayType
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *PlayTypeStore) List(ctx context.Context) ([]types.PlayType, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.PlayType
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PlayTypeStore) Update(ctx context.Context, id int64, name, description, context string) error {
	query := sq.Update(s.GetTable()).
		Set("name", name).
		Set("description", description).
		Set("context", context).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PlayTypeStore) Delete(ctx context.Context, id int64) error {
	for _, table := range []string{
		types.TABLE_PLAY_TYPE_AGE_COHORT.Name(),
		types.TABLE_PLAY_TYPE_DOMAIN.Name(),
	} {
		queryString, args, err := sq.Delete(table).Where(sq.Eq{"play_type_id": id}).ToSql()
		if err != nil {
			return ErrorSqlBuild(err)
		}
		if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
			return err
		}
	}

	queryString, args, err := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// SetAgeCohorts replaces the cohort links for a play type.
func (s *PlayTypeStore) SetAgeCohorts(ctx context.Context, playTypeID int64, ageCohortIDs []int64) error {
	return s.replaceLinks(ctx, types.TABLE_PLAY_TYPE_AGE_COHORT.Name(), "age_cohort_id", playTypeID, ageCohortIDs)
}

// SetDomains replaces the domain links for a play type.
func (s *PlayTypeStore) SetDomains(ctx context.Context, playTypeID int64, domainIDs []int64) error {
	return s.replaceLinks(ctx, types.TABLE_PLAY_TYPE_DOMAIN.Name(), "domain_id", playTypeID, domainIDs)
}

func (s *PlayTypeStore) replaceLinks(ctx context.Context, table, column string, playTypeID int64, ids []int64) error {
	queryString, args, err := sq.Delete(table).Where(sq.Eq{"play_type_id": playTypeID}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	insert := sq.Insert(table).Columns("play_type_id", column)
	for _, id := range ids {
		insert = insert.Values(playTypeID, id)
	}

	queryString, args, err = insert.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UnlinkAgeCohort drops every play type link to the cohort, part of the
// cohort's cascade delete.
func (s *PlayTypeStore) UnlinkAgeCohort(ctx context.Context, ageCohortID int64) error {
	return s.deleteLinks(ctx, types.TABLE_PLAY_TYPE_AGE_COHORT.Name(), "age_cohort_id", ageCohortID)
}

func (s *PlayTypeStore) UnlinkDomain(ctx context.Context, domainID int64) error {
	return s.deleteLinks(ctx, types.TABLE_PLAY_TYPE_DOMAIN.Name(), "domain_id", domainID)
}

func (s *PlayTypeStore) deleteLinks(ctx context.Context, table, column string, id int64) error {
	queryString, args, err := sq.Delete(table).Where(sq.Eq{column: id}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PlayTypeStore) ListAgeCohortIDs(ctx context.Context, playTypeID int64) ([]int64, error) {
	return s.listLinkIDs(ctx, types.TABLE_PLAY_TYPE_AGE_COHORT.Name(), "age_cohort_id", playTypeID)
}

func (s *PlayTypeStore) ListDomainIDs(ctx context.Context, playTypeID int64) ([]int64, error) {
	return s.listLinkIDs(ctx, types.TABLE_PLAY_TYPE_DOMAIN.Name(), "domain_id", playTypeID)
}

func (s *PlayTypeStore) listLinkIDs(ctx context.Context, table, column string, playTypeID int64) ([]int64, error) {
	query := sq.Select(column).From(table).Where(sq.Eq{"play_type_id": playTypeID}).OrderBy(column + " ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []int64
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListForPair returns the play types linked to both the cohort and the
// domain, the set the wizard offers for that selection.
func (s *PlayTypeStore) ListForPair(ctx context.Context, ageCohortID, domainID int64) ([]types.PlayType, error) {
	query := sq.Select(s.GetAllColumnsWithPrefix("p")...).
		From(s.GetTable() + " p").
		Join(types.TABLE_PLAY_TYPE_AGE_COHORT.Name() + " pa ON pa.play_type_id = p.id").
		Join(types.TABLE_PLAY_TYPE_DOMAIN.Name() + " pd ON pd.play_type_id = p.id").
		Where(sq.Eq{"pa.age_cohort_id": ageCohortID, "pd.domain_id": domainID}).
		OrderBy("p.id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.PlayType
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
