package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type ResourceStore struct {
	CommonFields
}

func NewResourceStore(provider SqlProviderAchieve) *ResourceStore {
	repo := &ResourceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_RESOURCE)
	repo.SetAllColumns("id", "title", "resource_type", "content_path", "chunk_count", "created_at")
	return repo
}

func (s *ResourceStore) Create(ctx context.Context, data types.Resource) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "resource_type", "content_path", "chunk_count", "created_at").
		Values(data.ID, data.Title, data.ResourceType, data.ContentPath, data.ChunkCount, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ResourceStore) Get(ctx context.Context, id string) (*types.Resource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Resource
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *ResourceStore) List(ctx context.Context, page, pageSize uint64) ([]types.Resource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Resource
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceStore) Total(ctx context.Context) (int64, error) {
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

func (s *ResourceStore) Update(ctx context.Context, id, title, resourceType, contentPath string) error {
	query := sq.Update(s.GetTable()).
		Set("title", title).
		Set("resource_type", resourceType).
		Set("content_path", contentPath).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ResourceStore) UpdateChunkCount(ctx context.Context, id string, count int) error {
	query := sq.Update(s.GetTable()).Set("chunk_count", count).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ResourceStore) Delete(ctx context.Context, id string) error {
	for _, table := range []string{
		types.TABLE_RESOURCE_AGE_COHORT.Name(),
		types.TABLE_RESOURCE_DOMAIN.Name(),
	} {
		queryString, args, err := sq.Delete(table).Where(sq.Eq{"resource_id": id}).ToSql()
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

func (s *ResourceStore) SetAgeCohorts(ctx context.Context, resourceID string, ageCohortIDs []int64) error {
	return s.replaceLinks(ctx, types.TABLE_RESOURCE_AGE_COHORT.Name(), "age_cohort_id", resourceID, ageCohortIDs)
}

func (s *ResourceStore) SetDomains(ctx context.Context, resourceID string, domainIDs []int64) error {
	return s.replaceLinks(ctx, types.TABLE_RESOURCE_DOMAIN.Name(), "domain_id", resourceID, domainIDs)
}

func (s *ResourceStore) replaceLinks(ctx context.Context, table, column, resourceID string, ids []int64) error {
	queryString, args, err := sq.Delete(table).Where(sq.Eq{"resource_id": resourceID}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	insert := sq.Insert(table).Columns("resource_id", column)
	for _, id := range ids {
		insert = insert.Values(resourceID, id)
	}

	queryString, args, err = insert.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UnlinkAgeCohort drops every resource link to the cohort, part of the
// cohort's cascade delete.
func (s *ResourceStore) UnlinkAgeCohort(ctx context.Context, ageCohortID int64) error {
	return s.deleteLinks(ctx, types.TABLE_RESOURCE_AGE_COHORT.Name(), "age_cohort_id", ageCohortID)
}

func (s *ResourceStore) UnlinkDomain(ctx context.Context, domainID int64) error {
	return s.deleteLinks(ctx, types.TABLE_RESOURCE_DOMAIN.Name(), "domain_id", domainID)
}

func (s *ResourceStore) deleteLinks(ctx context.Context, table, column string, id int64) error {
	queryString, args, err := sq.Delete(table).Where(sq.Eq{column: id}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ResourceStore) ListAgeCohortIDs(ctx context.Context, resourceID string) ([]int64, error) {
	return s.listLinkIDs(ctx, types.TABLE_RESOURCE_AGE_COHORT.Name(), "age_cohort_id", resourceID)
}

func (s *ResourceStore) ListDomainIDs(ctx context.Context, resourceID string) ([]int64, error) {
	return s.listLinkIDs(ctx, types.TABLE_RESOURCE_DOMAIN.Name(), "domain_id", resourceID)
}

func (s *ResourceStore) listLinkIDs(ctx context.Context, table, column, resourceID string) ([]int64, error) {
	query := sq.Select(column).From(table).Where(sq.Eq{"resource_id": resourceID}).OrderBy(column + " ASC")

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
