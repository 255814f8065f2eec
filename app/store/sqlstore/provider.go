package sqlstore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/sproutplan/sproutplan/app/store"
	"github.com/sproutplan/sproutplan/pkg/sqlstore"
	"github.com/sproutplan/sproutplan/pkg/types"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.UserStore
	store.AccessTokenStore
	store.AgeCohortStore
	store.DomainStore
	store.ComponentStore
	store.PlayTypeStore
	store.ResourceStore
	store.ChunkStore
	store.PlanStore
	store.ActivityLogStore
	store.FeedbackLogStore
}

func MustSetup(m sqlstore.ConnectConfig, replicas ...sqlstore.ConnectConfig) *Provider {
	provider := &Provider{
		SqlProvider: sqlstore.MustSetupProvider(m, replicas...),
		stores:      &Stores{},
	}

	provider.stores.UserStore = NewUserStore(provider)
	provider.stores.AccessTokenStore = NewAccessTokenStore(provider)
	provider.stores.AgeCohortStore = NewAgeCohortStore(provider)
	provider.stores.DomainStore = NewDomainStore(provider)
	provider.stores.ComponentStore = NewComponentStore(provider)
	provider.stores.PlayTypeStore = NewPlayTypeStore(provider)
	provider.stores.ResourceStore = NewResourceStore(provider)
	provider.stores.ChunkStore = NewChunkStore(provider)
	provider.stores.PlanStore = NewPlanStore(provider)
	provider.stores.ActivityLogStore = NewActivityLogStore(provider)
	provider.stores.FeedbackLogStore = NewFeedbackLogStore(provider)

	return provider
}

// Install enables required extensions and applies any migration file not
// yet recorded in the schema ledger.
func (p *Provider) Install() error {
	if err := p.enableExtensions(); err != nil {
		return err
	}

	if err := p.ensureMigrationTable(); err != nil {
		return err
	}

	files, err := CreateTableFiles.ReadDir("migrations")
	if err != nil {
		return err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		if executed, err := p.isFileExecuted(file.Name()); err != nil {
			return err
		} else if executed {
			continue
		}

		raw, err := CreateTableFiles.ReadFile("migrations/" + file.Name())
		if err != nil {
			return err
		}

		if _, err = p.SqlProvider.GetMaster().Exec(string(raw)); err != nil {
			return fmt.Errorf("migration %s failed: %w", file.Name(), err)
		}

		if err = p.markFileExecuted(file.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) enableExtensions() error {
	extensions := []string{
		"CREATE EXTENSION IF NOT EXISTS vector;",
	}

	for _, ext := range extensions {
		if _, err := p.SqlProvider.GetMaster().Exec(ext); err != nil {
			return fmt.Errorf("failed to enable extension: %w\nSQL: %s", err, ext)
		}
	}
	return nil
}

func (p *Provider) ensureMigrationTable() error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + types.TABLE_PREFIX + `schema_migrations (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`
	_, err := p.SqlProvider.GetMaster().Exec(createTableSQL)
	return err
}

func (p *Provider) isFileExecuted(filename string) (bool, error) {
	var count int
	err := p.SqlProvider.GetReplica().Get(&count,
		"SELECT COUNT(*) FROM "+types.TABLE_PREFIX+"schema_migrations WHERE filename = $1", filename)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Provider) markFileExecuted(filename string) error {
	_, err := p.SqlProvider.GetMaster().Exec(
		"INSERT INTO "+types.TABLE_PREFIX+"schema_migrations (filename, executed_at) VALUES ($1, $2) ON CONFLICT (filename) DO NOTHING",
		filename, time.Now().Unix())
	return err
}

func (p *Provider) UserStore() store.UserStore {
	return p.stores.UserStore
}

func (p *Provider) AccessTokenStore() store.AccessTokenStore {
	return p.stores.AccessTokenStore
}

func (p *Provider) AgeCohortStore() store.AgeCohortStore {
	return p.stores.AgeCohortStore
}

func (p *Provider) DomainStore() store.DomainStore {
	return p.stores.DomainStore
}

func (p *Provider) ComponentStore() store.ComponentStore {
	return p.stores.ComponentStore
}

func (p *Provider) PlayTypeStore() store.PlayTypeStore {
	return p.stores.PlayTypeStore
}

func (p *Provider) ResourceStore() store.ResourceStore {
	return p.stores.ResourceStore
}

func (p *Provider) ChunkStore() store.ChunkStore {
	return p.stores.ChunkStore
}

func (p *Provider) PlanStore() store.PlanStore {
	return p.stores.PlanStore
}

func (p *Provider) ActivityLogStore() store.ActivityLogStore {
	return p.stores.ActivityLogStore
}

func (p *Provider) FeedbackLogStore() store.FeedbackLogStore {
	return p.stores.FeedbackLogStore
}
