package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("handler.pathID", i18n.ERROR_INVALIDARGUMENT, err).Code(400)
	}
	return id, nil
}

type NamedItemRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=128"`
}

func (s *HttpSrv) ListAgeCohorts(c *gin.Context) {
	list, err := v1.NewTaxonomyLogic(c, s.Core).ListAgeCohorts()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) CreateAgeCohort(c *gin.Context) {
	var req NamedItemRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err := v1.NewTaxonomyLogic(c, s.Core).CreateAgeCohort(req.Name); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) UpdateAgeCohort(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	var req NamedItemRequest
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).UpdateAgeCohort(id, req.Name); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteAgeCohort(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).DeleteAgeCohort(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListDomains(c *gin.Context) {
	list, err := v1.NewTaxonomyLogic(c, s.Core).ListDomains()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) CreateDomain(c *gin.Context) {
	var req NamedItemRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err := v1.NewTaxonomyLogic(c, s.Core).CreateDomain(req.Name); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) UpdateDomain(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	var req NamedItemRequest
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).UpdateDomain(id, req.Name); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteDomain(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).DeleteDomain(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type ListComponentsRequest struct {
	AgeCohortID int64 `json:"age_cohort_id" form:"age_cohort_id"`
	DomainID    int64 `json:"domain_id" form:"domain_id"`
}

func (s *HttpSrv) ListComponents(c *gin.Context) {
	var req ListComponentsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	list, err := v1.NewTaxonomyLogic(c, s.Core).ListComponents(req.AgeCohortID, req.DomainID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type ComponentRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	AgeCohortID int64  `json:"age_cohort_id" form:"age_cohort_id" binding:"required"`
	DomainID    int64  `json:"domain_id" form:"domain_id" binding:"required"`
}

func (s *HttpSrv) CreateComponent(c *gin.Context) {
	var req ComponentRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err := v1.NewTaxonomyLogic(c, s.Core).CreateComponent(req.Name, req.AgeCohortID, req.DomainID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) UpdateComponent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	var req ComponentRequest
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).UpdateComponent(id, req.Name, req.AgeCohortID, req.DomainID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteComponent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).DeleteComponent(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListPlayTypes(c *gin.Context) {
	list, err := v1.NewTaxonomyLogic(c, s.Core).ListPlayTypes()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type PlayTypeRequest struct {
	Name         string  `json:"name" form:"name" binding:"required,max=128"`
	Description  string  `json:"description" form:"description"`
	Context      string  `json:"context" form:"context"`
	AgeCohortIDs []int64 `json:"age_cohort_ids" form:"age_cohort_ids"`
	DomainIDs    []int64 `json:"domain_ids" form:"domain_ids"`
}

func (s *HttpSrv) CreatePlayType(c *gin.Context) {
	var req PlayTypeRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err := v1.NewTaxonomyLogic(c, s.Core).CreatePlayType(req.Name, req.Description, req.Context, req.AgeCohortIDs, req.DomainIDs); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) UpdatePlayType(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	var req PlayTypeRequest
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).UpdatePlayType(id, req.Name, req.Description, req.Context, req.AgeCohortIDs, req.DomainIDs); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeletePlayType(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if err = v1.NewTaxonomyLogic(c, s.Core).DeletePlayType(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
