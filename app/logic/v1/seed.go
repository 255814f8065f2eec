package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

// SeedLogic populates an empty database with the starter taxonomy and
// the bootstrap admin. Every step is idempotent, seeding a non-empty
// table is a no-op.
type SeedLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewSeedLogic(ctx context.Context, core *core.Core) *SeedLogic {
	return &SeedLogic{
		ctx:  ctx,
		core: core,
	}
}

var seedAgeCohorts = []string{
	"0-1 years",
	"1-2 years",
	"2-3 years",
	"3-4 years",
}

var seedDomains = []string{
	"Mathematics",
	"Language & Literacy",
	"Science & Discovery",
	"Socio-Emotional Development",
	"Geography",
}

var seedPlayTypes = []types.PlayType{
	{Name: "Free Play", Description: "Child-led exploration using open-ended materials. Encourages creativity and curiosity.", Context: "Standard"},
	{Name: "Guided Play", Description: "Teacher provides gentle structure and scaffolding while allowing choice.", Context: "Standard"},
	{Name: "Structured Activity", Description: "Teacher-led, step-by-step activity designed for specific outcomes.", Context: "Standard"},
	{Name: "Nature Crafting", Description: "Using found natural objects like leaves, twigs, and stones to create art or structures.", Context: "Green Play"},
	{Name: "Recycled Material Building", Description: "Building towers, robots, or anything imaginable using clean recycled materials.", Context: "Green Play"},
	{Name: "Water Conservation Game", Description: "An activity focused on understanding why water is precious and how to save it.", Context: "Climate Vulnerability"},
}

// seedComponents maps component name to its cohort and domain by name;
// the seeder resolves the ids at insert time.
var seedComponents = []struct {
	Name      string
	AgeCohort string
	Domain    string
}{
	{"Sensory exploration (touching, stacking, dropping)", "0-1 years", "Mathematics"},
	{"Early spatial awareness", "0-1 years", "Mathematics"},
	{"Early number sense", "1-2 years", "Mathematics"},
	{"Sorting and classification", "1-2 years", "Mathematics"},
	{"Shapes and spatial awareness", "1-2 years", "Mathematics"},
	{"Patterns and sequencing", "2-3 years", "Mathematics"},
	{"Measurement and comparison", "2-3 years", "Mathematics"},
	{"Problem solving and logical thinking", "3-4 years", "Mathematics"},
	{"Mathematical language", "3-4 years", "Mathematics"},

	{"Listening and responding to voices and sounds", "0-1 years", "Language & Literacy"},
	{"Babbling and imitation", "0-1 years", "Language & Literacy"},
	{"Vocabulary building", "1-2 years", "Language & Literacy"},
	{"Naming familiar objects", "1-2 years", "Language & Literacy"},
	{"Following instructions", "1-2 years", "Language & Literacy"},
	{"Story listening", "2-3 years", "Language & Literacy"},
	{"Expressing needs with words", "2-3 years", "Language & Literacy"},
	{"Rhymes and songs", "2-3 years", "Language & Literacy"},
	{"Describing actions", "2-3 years", "Language & Literacy"},
	{"Storytelling and role play", "3-4 years", "Language & Literacy"},
	{"Letter and sound awareness", "3-4 years", "Language & Literacy"},
	{"Question and answer conversations", "3-4 years", "Language & Literacy"},
	{"Early writing and mark-making", "3-4 years", "Language & Literacy"},

	{"Exploring textures, sounds, and lights", "0-1 years", "Science & Discovery"},
	{"Observing cause and effect", "0-1 years", "Science & Discovery"},
	{"Simple observation (floating, sinking)", "1-2 years", "Science & Discovery"},
	{"Exploring natural objects", "1-2 years", "Science & Discovery"},
	{"Observing plants, animals, and weather", "2-3 years", "Science & Discovery"},
	{"Describing basic phenomena (hot/cold, light/dark)", "2-3 years", "Science & Discovery"},
	{"Experimenting and predicting outcomes", "3-4 years", "Science & Discovery"},
	{"Understanding living and non-living things", "3-4 years", "Science & Discovery"},
	{"Exploring materials and change (melting, mixing)", "3-4 years", "Science & Discovery"},

	{"Bonding and trust building", "0-1 years", "Socio-Emotional Development"},
	{"Recognizing familiar faces", "0-1 years", "Socio-Emotional Development"},
	{"Expressing emotions", "1-2 years", "Socio-Emotional Development"},
	{"Parallel play", "1-2 years", "Socio-Emotional Development"},
	{"Recognizing others’ emotions", "1-2 years", "Socio-Emotional Development"},
	{"Sharing and turn-taking", "2-3 years", "Socio-Emotional Development"},
	{"Developing empathy", "2-3 years", "Socio-Emotional Development"},
	{"Managing simple emotions", "2-3 years", "Socio-Emotional Development"},
	{"Cooperative play", "3-4 years", "Socio-Emotional Development"},
	{"Understanding rules and routines", "3-4 years", "Socio-Emotional Development"},
	{"Expressing complex emotions and self-regulation", "3-4 years", "Socio-Emotional Development"},

	{"Basic Map Skills", "3-4 years", "Geography"},
}

func (l *SeedLogic) Seed() error {
	if err := l.seedTaxonomy(); err != nil {
		return err
	}
	return l.seedAdmin()
}

func (l *SeedLogic) seedTaxonomy() error {
	cohorts, err := l.core.Store().AgeCohortStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.AgeCohortStore.List", i18n.ERROR_INTERNAL, err)
	}
	if len(cohorts) == 0 {
		slog.Info("seeding age cohorts")
		for _, name := range seedAgeCohorts {
			if err := l.core.Store().AgeCohortStore().Create(l.ctx, types.AgeCohort{Name: name, CreatedAt: time.Now().Unix()}); err != nil {
				return errors.New("SeedLogic.seedTaxonomy.AgeCohortStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}
	}

	domains, err := l.core.Store().DomainStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.DomainStore.List", i18n.ERROR_INTERNAL, err)
	}
	if len(domains) == 0 {
		slog.Info("seeding domains")
		for _, name := range seedDomains {
			if err := l.core.Store().DomainStore().Create(l.ctx, types.Domain{Name: name, CreatedAt: time.Now().Unix()}); err != nil {
				return errors.New("SeedLogic.seedTaxonomy.DomainStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}
	}

	if cohorts, err = l.core.Store().AgeCohortStore().List(l.ctx); err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.AgeCohortStore.reload", i18n.ERROR_INTERNAL, err)
	}
	if domains, err = l.core.Store().DomainStore().List(l.ctx); err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.DomainStore.reload", i18n.ERROR_INTERNAL, err)
	}

	cohortIDs := make(map[string]int64, len(cohorts))
	allCohortIDs := make([]int64, 0, len(cohorts))
	for _, c := range cohorts {
		cohortIDs[c.Name] = c.ID
		allCohortIDs = append(allCohortIDs, c.ID)
	}
	domainIDs := make(map[string]int64, len(domains))
	allDomainIDs := make([]int64, 0, len(domains))
	for _, d := range domains {
		domainIDs[d.Name] = d.ID
		allDomainIDs = append(allDomainIDs, d.ID)
	}

	playTypes, err := l.core.Store().PlayTypeStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.PlayTypeStore.List", i18n.ERROR_INTERNAL, err)
	}
	if len(playTypes) == 0 {
		slog.Info("seeding play types")
		// Starter play types are offered for every cohort/domain pair.
		for _, pt := range seedPlayTypes {
			err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
				id, err := l.core.Store().PlayTypeStore().Create(ctx, types.PlayType{
					Name:        pt.Name,
					Description: pt.Description,
					Context:     pt.Context,
					CreatedAt:   time.Now().Unix(),
				})
				if err != nil {
					return err
				}
				if err = l.core.Store().PlayTypeStore().SetAgeCohorts(ctx, id, allCohortIDs); err != nil {
					return err
				}
				return l.core.Store().PlayTypeStore().SetDomains(ctx, id, allDomainIDs)
			})
			if err != nil {
				return errors.New("SeedLogic.seedTaxonomy.PlayTypeStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}
	}

	components, err := l.core.Store().ComponentStore().List(l.ctx, 0, 0)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedTaxonomy.ComponentStore.List", i18n.ERROR_INTERNAL, err)
	}
	if len(components) == 0 {
		slog.Info("seeding components")
		for _, c := range seedComponents {
			cohortID, okCohort := cohortIDs[c.AgeCohort]
			domainID, okDomain := domainIDs[c.Domain]
			if !okCohort || !okDomain {
				continue
			}
			err := l.core.Store().ComponentStore().Create(l.ctx, types.Component{
				Name:        c.Name,
				AgeCohortID: cohortID,
				DomainID:    domainID,
				CreatedAt:   time.Now().Unix(),
			})
			if err != nil {
				return errors.New("SeedLogic.seedTaxonomy.ComponentStore.Create", i18n.ERROR_INTERNAL, err)
			}
		}
	}

	return nil
}

func (l *SeedLogic) seedAdmin() error {
	email := l.core.Cfg().Auth.AdminEmail
	password := l.core.Cfg().Auth.AdminPassword
	if email == "" || password == "" {
		slog.Warn("admin credentials not configured, skipping admin bootstrap")
		return nil
	}

	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("SeedLogic.seedAdmin.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return nil
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return errors.New("SeedLogic.seedAdmin.hashPassword", i18n.ERROR_INTERNAL, err)
	}

	err = l.core.Store().UserStore().Create(l.ctx, types.User{
		ID:        utils.GenUniqIDStr(),
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  hashed,
		Role:      types.USER_ROLE_ADMIN,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.New("SeedLogic.seedAdmin.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	slog.Info("admin account created", slog.String("email", email))
	return nil
}
