package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

type ListResourcesRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize"`
}

type ListResourcesResponse struct {
	List  []types.ResourceDetail `json:"list"`
	Total int64                  `json:"total"`
}

func (s *HttpSrv) ListResources(c *gin.Context) {
	var req ListResourcesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewResourceLogic(c, s.Core).ListResources(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListResourcesResponse{List: list, Total: total})
}

func (s *HttpSrv) GetResource(c *gin.Context) {
	detail, err := v1.NewResourceLogic(c, s.Core).GetResource(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, detail)
}

type ListResourceChunksResponse struct {
	List  []types.Chunk `json:"list"`
	Total int64         `json:"total"`
}

func (s *HttpSrv) ListResourceChunks(c *gin.Context) {
	var req ListResourcesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewResourceLogic(c, s.Core).ListChunks(c.Param("id"), page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListResourceChunksResponse{List: list, Total: total})
}

// CreateResourceRequest arrives as multipart form data so pdf uploads
// can travel with their metadata.
type CreateResourceRequest struct {
	Title        string  `form:"title" binding:"required,max=255"`
	ResourceType string  `form:"resource_type" binding:"required,oneof=text link pdf"`
	ContentPath  string  `form:"content_path"`
	AgeCohortIDs []int64 `form:"age_cohort_ids[]"`
	DomainIDs    []int64 `form:"domain_ids[]"`
}

func (s *HttpSrv) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic := v1.NewResourceLogic(c, s.Core)

	contentPath := req.ContentPath
	if req.ResourceType == types.RESOURCE_TYPE_PDF {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.APIError(c, errors.New("handler.CreateResource.FormFile", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
			return
		}
		if contentPath, err = logic.SaveUpload(fileHeader); err != nil {
			response.APIError(c, err)
			return
		}
	} else if contentPath == "" {
		response.APIError(c, errors.New("handler.CreateResource.contentPath", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	detail, err := logic.CreateResource(req.Title, req.ResourceType, contentPath, req.AgeCohortIDs, req.DomainIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, detail)
}

type UpdateResourceRequest struct {
	Title        string  `json:"title" form:"title" binding:"required,max=255"`
	ResourceType string  `json:"resource_type" form:"resource_type" binding:"required,oneof=text link pdf"`
	ContentPath  string  `json:"content_path" form:"content_path" binding:"required"`
	AgeCohortIDs []int64 `json:"age_cohort_ids" form:"age_cohort_ids"`
	DomainIDs    []int64 `json:"domain_ids" form:"domain_ids"`
}

func (s *HttpSrv) UpdateResource(c *gin.Context) {
	var req UpdateResourceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err := v1.NewResourceLogic(c, s.Core).UpdateResource(c.Param("id"), req.Title, req.ResourceType, req.ContentPath, req.AgeCohortIDs, req.DomainIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteResource(c *gin.Context) {
	if err := v1.NewResourceLogic(c, s.Core).DeleteResource(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) IngestResource(c *gin.Context) {
	if err := v1.NewResourceLogic(c, s.Core).Ingest(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type ReindexResponse struct {
	Processed int                 `json:"processed"`
	Failures  []v1.ReindexFailure `json:"failures"`
}

func (s *HttpSrv) ReindexResources(c *gin.Context) {
	processed, failures, err := v1.NewResourceLogic(c, s.Core).ReindexAll()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ReindexResponse{Processed: processed, Failures: failures})
}
