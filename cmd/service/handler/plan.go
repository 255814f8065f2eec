package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

type SavePlanRequest struct {
	Title     string `json:"title" form:"title" binding:"required,max=255"`
	Content   string `json:"content" form:"content" binding:"required"`
	AgeCohort string `json:"age_cohort" form:"age_cohort"`
	Subject   string `json:"subject" form:"subject"`
	PlayType  string `json:"play_type" form:"play_type"`
}

type SavePlanResponse struct {
	PlanID string `json:"plan_id"`
}

func (s *HttpSrv) SavePlan(c *gin.Context) {
	var req SavePlanRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, err := v1.NewPlanLogic(c, s.Core).SavePlan(req.Title, req.Content, req.AgeCohort, req.Subject, req.PlayType)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, SavePlanResponse{PlanID: id})
}

type ListPlansRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize"`
}

type ListPlansResponse struct {
	List  []types.Plan `json:"list"`
	Total int64        `json:"total"`
}

func (s *HttpSrv) ListPlans(c *gin.Context) {
	var req ListPlansRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewPlanLogic(c, s.Core).ListPlans(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListPlansResponse{List: list, Total: total})
}

func (s *HttpSrv) GetPlan(c *gin.Context) {
	plan, err := v1.NewPlanLogic(c, s.Core).GetPlan(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, plan)
}

func (s *HttpSrv) DeletePlan(c *gin.Context) {
	if err := v1.NewPlanLogic(c, s.Core).DeletePlan(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type SubmitFeedbackRequest struct {
	Rating          int             `json:"rating" form:"rating" binding:"required"`
	Selections      json.RawMessage `json:"selections"`
	GeneratedOutput json.RawMessage `json:"generated_output"`
}

func (s *HttpSrv) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err := v1.NewFeedbackLogic(c, s.Core).Submit(req.Rating, req.Selections, req.GeneratedOutput); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
