package v1

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
)

// TaxonomyLogic manages the cohort/domain/component/play-type hierarchy
// the plan wizard is built from. Mutations are admin-only, enforced by
// the router.
type TaxonomyLogic struct {
	ctx  context.Context
	core *core.Core
	user types.UserTokenMeta
}

func NewTaxonomyLogic(ctx context.Context, core *core.Core) *TaxonomyLogic {
	user, _ := InjectUserMeta(ctx)
	return &TaxonomyLogic{
		ctx:  ctx,
		core: core,
		user: user,
	}
}

func (l *TaxonomyLogic) ListAgeCohorts() ([]types.AgeCohort, error) {
	list, err := l.core.Store().AgeCohortStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaxonomyLogic.ListAgeCohorts.AgeCohortStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *TaxonomyLogic) CreateAgeCohort(name string) error {
	exist, err := l.core.Store().AgeCohortStore().GetByName(l.ctx, name)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.CreateAgeCohort.AgeCohortStore.GetByName", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return errors.New("TaxonomyLogic.CreateAgeCohort.exist", i18n.ERROR_EXIST, nil).Code(http.StatusConflict)
	}

	err = l.core.Store().AgeCohortStore().Create(l.ctx, types.AgeCohort{
		Name:      name,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.New("TaxonomyLogic.CreateAgeCohort.AgeCohortStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *TaxonomyLogic) UpdateAgeCohort(id int64, name string) error {
	err := l.core.Store().AgeCohortStore().Update(l.ctx, id, name)
	if err != nil {
		return errors.New("TaxonomyLogic.UpdateAgeCohort.AgeCohortStore.Update", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// DeleteAgeCohort removes the cohort together with its components and
// every play-type and resource link that references it.
func (l *TaxonomyLogic) DeleteAgeCohort(id int64) error {
	cohort, err := l.core.Store().AgeCohortStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.DeleteAgeCohort.AgeCohortStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if cohort == nil {
		return errors.New("TaxonomyLogic.DeleteAgeCohort.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ComponentStore().DeleteByAgeCohort(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteAgeCohort.ComponentStore.DeleteByAgeCohort", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().PlayTypeStore().UnlinkAgeCohort(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteAgeCohort.PlayTypeStore.UnlinkAgeCohort", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().UnlinkAgeCohort(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteAgeCohort.ResourceStore.UnlinkAgeCohort", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().AgeCohortStore().Delete(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteAgeCohort.AgeCohortStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted Age Cohort: %s", cohort.Name))
	return nil
}

func (l *TaxonomyLogic) ListDomains() ([]types.Domain, error) {
	list, err := l.core.Store().DomainStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaxonomyLogic.ListDomains.DomainStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *TaxonomyLogic) CreateDomain(name string) error {
	exist, err := l.core.Store().DomainStore().GetByName(l.ctx, name)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.CreateDomain.DomainStore.GetByName", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return errors.New("TaxonomyLogic.CreateDomain.exist", i18n.ERROR_EXIST, nil).Code(http.StatusConflict)
	}

	err = l.core.Store().DomainStore().Create(l.ctx, types.Domain{
		Name:      name,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.New("TaxonomyLogic.CreateDomain.DomainStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *TaxonomyLogic) UpdateDomain(id int64, name string) error {
	err := l.core.Store().DomainStore().Update(l.ctx, id, name)
	if err != nil {
		return errors.New("TaxonomyLogic.UpdateDomain.DomainStore.Update", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *TaxonomyLogic) DeleteDomain(id int64) error {
	domain, err := l.core.Store().DomainStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.DeleteDomain.DomainStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if domain == nil {
		return errors.New("TaxonomyLogic.DeleteDomain.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ComponentStore().DeleteByDomain(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteDomain.ComponentStore.DeleteByDomain", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().PlayTypeStore().UnlinkDomain(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteDomain.PlayTypeStore.UnlinkDomain", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().UnlinkDomain(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteDomain.ResourceStore.UnlinkDomain", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().DomainStore().Delete(ctx, id); err != nil {
			return errors.New("TaxonomyLogic.DeleteDomain.DomainStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted Domain: %s", domain.Name))
	return nil
}

func (l *TaxonomyLogic) ListComponents(ageCohortID, domainID int64) ([]types.ComponentDetail, error) {
	list, err := l.core.Store().ComponentStore().List(l.ctx, ageCohortID, domainID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaxonomyLogic.ListComponents.ComponentStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *TaxonomyLogic) CreateComponent(name string, ageCohortID, domainID int64) error {
	err := l.core.Store().ComponentStore().Create(l.ctx, types.Component{
		Name:        name,
		AgeCohortID: ageCohortID,
		DomainID:    domainID,
		CreatedAt:   time.Now().Unix(),
	})
	if err != nil {
		return errors.New("TaxonomyLogic.CreateComponent.ComponentStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *TaxonomyLogic) UpdateComponent(id int64, name string, ageCohortID, domainID int64) error {
	err := l.core.Store().ComponentStore().Update(l.ctx, id, name, ageCohortID, domainID)
	if err != nil {
		return errors.New("TaxonomyLogic.UpdateComponent.ComponentStore.Update", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *TaxonomyLogic) DeleteComponent(id int64) error {
	component, err := l.core.Store().ComponentStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.DeleteComponent.ComponentStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if component == nil {
		return errors.New("TaxonomyLogic.DeleteComponent.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().ComponentStore().Delete(l.ctx, id); err != nil {
		return errors.New("TaxonomyLogic.DeleteComponent.ComponentStore.Delete", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted Component: %s", component.Name))
	return nil
}

func (l *TaxonomyLogic) ListPlayTypes() ([]types.PlayTypeDetail, error) {
	list, err := l.core.Store().PlayTypeStore().List(l.ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaxonomyLogic.ListPlayTypes.PlayTypeStore.List", i18n.ERROR_INTERNAL, err)
	}

	res := make([]types.PlayTypeDetail, 0, len(list))
	for _, pt := range list {
		detail, err := l.playTypeDetail(l.ctx, pt)
		if err != nil {
			return nil, err
		}
		res = append(res, detail)
	}
	return res, nil
}

func (l *TaxonomyLogic) playTypeDetail(ctx context.Context, pt types.PlayType) (types.PlayTypeDetail, error) {
	cohortIDs, err := l.core.Store().PlayTypeStore().ListAgeCohortIDs(ctx, pt.ID)
	if err != nil && err != sql.ErrNoRows {
		return types.PlayTypeDetail{}, errors.New("TaxonomyLogic.playTypeDetail.ListAgeCohortIDs", i18n.ERROR_INTERNAL, err)
	}
	domainIDs, err := l.core.Store().PlayTypeStore().ListDomainIDs(ctx, pt.ID)
	if err != nil && err != sql.ErrNoRows {
		return types.PlayTypeDetail{}, errors.New("TaxonomyLogic.playTypeDetail.ListDomainIDs", i18n.ERROR_INTERNAL, err)
	}
	return types.PlayTypeDetail{
		PlayType:     pt,
		AgeCohortIDs: cohortIDs,
		DomainIDs:    domainIDs,
	}, nil
}

func (l *TaxonomyLogic) CreatePlayType(name, description, playContext string, ageCohortIDs, domainIDs []int64) error {
	if playContext == "" {
		playContext = types.PLAY_CONTEXT_STANDARD
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		id, err := l.core.Store().PlayTypeStore().Create(ctx, types.PlayType{
			Name:        name,
			Description: description,
			Context:     playContext,
			CreatedAt:   time.Now().Unix(),
		})
		if err != nil {
			return errors.New("TaxonomyLogic.CreatePlayType.PlayTypeStore.Create", i18n.ERROR_INTERNAL, err)
		}
		if err = l.core.Store().PlayTypeStore().SetAgeCohorts(ctx, id, ageCohortIDs); err != nil {
			return errors.New("TaxonomyLogic.CreatePlayType.SetAgeCohorts", i18n.ERROR_INTERNAL, err)
		}
		if err = l.core.Store().PlayTypeStore().SetDomains(ctx, id, domainIDs); err != nil {
			return errors.New("TaxonomyLogic.CreatePlayType.SetDomains", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *TaxonomyLogic) UpdatePlayType(id int64, name, description, playContext string, ageCohortIDs, domainIDs []int64) error {
	if playContext == "" {
		playContext = types.PLAY_CONTEXT_STANDARD
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().PlayTypeStore().Update(ctx, id, name, description, playContext); err != nil {
			return errors.New("TaxonomyLogic.UpdatePlayType.PlayTypeStore.Update", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().PlayTypeStore().SetAgeCohorts(ctx, id, ageCohortIDs); err != nil {
			return errors.New("TaxonomyLogic.UpdatePlayType.SetAgeCohorts", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().PlayTypeStore().SetDomains(ctx, id, domainIDs); err != nil {
			return errors.New("TaxonomyLogic.UpdatePlayType.SetDomains", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *TaxonomyLogic) DeletePlayType(id int64) error {
	pt, err := l.core.Store().PlayTypeStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("TaxonomyLogic.DeletePlayType.PlayTypeStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if pt == nil {
		return errors.New("TaxonomyLogic.DeletePlayType.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().PlayTypeStore().Delete(l.ctx, id); err != nil {
		return errors.New("TaxonomyLogic.DeletePlayType.PlayTypeStore.Delete", i18n.ERROR_INTERNAL, err)
	}

	logActivity(l.ctx, l.core, l.user.UserID, fmt.Sprintf("Admin deleted Play Type: %s", pt.Name))
	return nil
}

// Options assembles the wizard feed: components nested under cohort and
// domain names, and for every pair that has components, the play types
// valid for that pair keyed "{cohortID}-{domainID}".
func (l *TaxonomyLogic) Options() (*types.GuideOptions, error) {
	cohorts, err := l.ListAgeCohorts()
	if err != nil {
		return nil, err
	}
	domains, err := l.ListDomains()
	if err != nil {
		return nil, err
	}

	options := &types.GuideOptions{
		AgeCohorts: make(map[string]map[string][]string),
		PlayTypes:  make(map[string][]types.PlayTypeDetail),
	}

	for _, cohort := range cohorts {
		options.AgeCohorts[cohort.Name] = make(map[string][]string)
		for _, domain := range domains {
			components, err := l.core.Store().ComponentStore().List(l.ctx, cohort.ID, domain.ID)
			if err != nil && err != sql.ErrNoRows {
				return nil, errors.New("TaxonomyLogic.Options.ComponentStore.List", i18n.ERROR_INTERNAL, err)
			}
			if len(components) == 0 {
				continue
			}

			names := make([]string, 0, len(components))
			for _, c := range components {
				names = append(names, c.Name)
			}
			options.AgeCohorts[cohort.Name][domain.Name] = names

			playTypes, err := l.core.Store().PlayTypeStore().ListForPair(l.ctx, cohort.ID, domain.ID)
			if err != nil && err != sql.ErrNoRows {
				return nil, errors.New("TaxonomyLogic.Options.PlayTypeStore.ListForPair", i18n.ERROR_INTERNAL, err)
			}

			key := fmt.Sprintf("%d-%d", cohort.ID, domain.ID)
			details := make([]types.PlayTypeDetail, 0, len(playTypes))
			for _, pt := range playTypes {
				detail, err := l.playTypeDetail(l.ctx, pt)
				if err != nil {
					return nil, err
				}
				details = append(details, detail)
			}
			options.PlayTypes[key] = details
		}
	}

	return options, nil
}
