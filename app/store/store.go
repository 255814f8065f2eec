package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/sproutplan/sproutplan/pkg/sqlstore"
	"github.com/sproutplan/sproutplan/pkg/types"
)

type UserStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, city, country string) error
	UpdatePassword(ctx context.Context, id, password string, forceChange bool) error
	List(ctx context.Context, page, pageSize uint64) ([]types.User, error)
	Total(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type AccessTokenStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, token string) (*types.AccessToken, error)
	Delete(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID string) error
	ClearExpired(ctx context.Context) (int64, error)
}

type AgeCohortStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.AgeCohort) error
	Get(ctx context.Context, id int64) (*types.AgeCohort, error)
	GetByName(ctx context.Context, name string) (*types.AgeCohort, error)
	List(ctx context.Context) ([]types.AgeCohort, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type DomainStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Domain) error
	Get(ctx context.Context, id int64) (*types.Domain, error)
	GetByName(ctx context.Context, name string) (*types.Domain, error)
	List(ctx context.Context) ([]types.Domain, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type ComponentStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Component) error
	Get(ctx context.Context, id int64) (*types.Component, error)
	List(ctx context.Context, ageCohortID, domainID int64) ([]types.ComponentDetail, error)
	Update(ctx context.Context, id int64, name string, ageCohortID, domainID int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByAgeCohort(ctx context.Context, ageCohortID int64) error
	DeleteByDomain(ctx context.Context, domainID int64) error
}

type PlayTypeStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.PlayType) (int64, error)
	Get(ctx context.Context, id int64) (*types.PlayType, error)
	List(ctx context.Context) ([]types.PlayType, error)
	Update(ctx context.Context, id int64, name, description, context string) error
	Delete(ctx context.Context, id int64) error
	SetAgeCohorts(ctx context.Context, playTypeID int64, ageCohortIDs []int64) error
	SetDomains(ctx context.Context, playTypeID int64, domainIDs []int64) error
	ListAgeCohortIDs(ctx context.Context, playTypeID int64) ([]int64, error)
	ListDomainIDs(ctx context.Context, playTypeID int64) ([]int64, error)
	ListForPair(ctx context.Context, ageCohortID, domainID int64) ([]types.PlayType, error)
	UnlinkAgeCohort(ctx context.Context, ageCohortID int64) error
	UnlinkDomain(ctx context.Context, domainID int64) error
}

type ResourceStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Resource) error
	Get(ctx context.Context, id string) (*types.Resource, error)
	List(ctx context.Context, page, pageSize uint64) ([]types.Resource, error)
	Total(ctx context.Context) (int64, error)
	Update(ctx context.Context, id, title, resourceType, contentPath string) error
	UpdateChunkCount(ctx context.Context, id string, count int) error
	Delete(ctx context.Context, id string) error
	SetAgeCohorts(ctx context.Context, resourceID string, ageCohortIDs []int64) error
	SetDomains(ctx context.Context, resourceID string, domainIDs []int64) error
	ListAgeCohortIDs(ctx context.Context, resourceID string) ([]int64, error)
	ListDomainIDs(ctx context.Context, resourceID string) ([]int64, error)
	UnlinkAgeCohort(ctx context.Context, ageCohortID int64) error
	UnlinkDomain(ctx context.Context, domainID int64) error
}

type ChunkStore interface {
	sqlstore.SqlCommons
	BatchCreate(ctx context.Context, data []*types.Chunk) error
	DeleteByResource(ctx context.Context, resourceID string) error
	Query(ctx context.Context, vector pgvector.Vector, limit int) ([]*types.ChunkMatch, error)
	List(ctx context.Context, opts types.GetChunksOptions, page, pageSize uint64) ([]types.Chunk, error)
	Total(ctx context.Context, opts types.GetChunksOptions) (int64, error)
}

type PlanStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Plan) error
	Get(ctx context.Context, userID, id string) (*types.Plan, error)
	List(ctx context.Context, userID string, page, pageSize uint64) ([]types.Plan, error)
	Total(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type ActivityLogStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ActivityLog) error
	List(ctx context.Context, page, pageSize uint64) ([]types.ActivityLogDetail, error)
	Total(ctx context.Context) (int64, error)
}

type FeedbackLogStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.FeedbackLog) error
	List(ctx context.Context, page, pageSize uint64) ([]types.FeedbackLog, error)
	Total(ctx context.Context) (int64, error)
}
