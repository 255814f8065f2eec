package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/sproutplan/sproutplan/pkg/types"
)

type ChunkStore struct {
	CommonFields
}

func NewChunkStore(provider SqlProviderAchieve) *ChunkStore {
	repo := &ChunkStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CHUNK)
	repo.SetAllColumns("id", "resource_id", "title", "domains", "age_cohorts",
		"content", "embedding", "created_at")
	return repo
}

func (s *ChunkStore) BatchCreate(ctx context.Context, data []*types.Chunk) error {
	if len(data) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "resource_id", "title", "domains", "age_cohorts", "content", "embedding", "created_at")
	for _, v := range data {
		query = query.Values(v.ID, v.ResourceID, v.Title, v.Domains, v.AgeCohorts, v.Content, v.Embedding, v.CreatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChunkStore) DeleteByResource(ctx context.Context, resourceID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"resource_id": resourceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Query returns the limit closest chunks by cosine similarity. The row
// embeddings come back too so the caller can rerank for diversity.
// pgvector distance operators:
// <-> - L2 distance
// <#> - (negative) inner product
// <=> - cosine distance
func (s *ChunkStore) Query(ctx context.Context, vector pgvector.Vector, limit int) ([]*types.ChunkMatch, error) {
	cosColumn, vectorArgs, _ := sq.Expr("1 - (embedding <=> ?) as cos", vector).ToSql()
	query := sq.Select("id", "resource_id", "title", "content", "embedding", cosColumn).
		From(s.GetTable()).
		OrderBy("cos DESC").
		Limit(uint64(limit))

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	args = append(vectorArgs, args...)

	var res []*types.ChunkMatch
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ChunkStore) List(ctx context.Context, opts types.GetChunksOptions, page, pageSize uint64) ([]types.Chunk, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	opts.Apply(&query)
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Chunk
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ChunkStore) Total(ctx context.Context, opts types.GetChunksOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())
	opts.Apply(&query)

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
