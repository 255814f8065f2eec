package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

func (s *HttpSrv) GuideOptions(c *gin.Context) {
	options, err := v1.NewTaxonomyLogic(c, s.Core).Options()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, options)
}

type GenerateGuideRequest struct {
	AgeCohort string `json:"age_cohort" form:"age_cohort" binding:"required"`
	Domain    string `json:"domain" form:"domain" binding:"required"`
	Component string `json:"component" form:"component" binding:"required"`
	PlayType  struct {
		Name    string `json:"name" form:"name"`
		Context string `json:"context" form:"context"`
	} `json:"play_type" form:"play_type"`
}

func (s *HttpSrv) GenerateGuide(c *gin.Context) {
	var req GenerateGuideRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewGuideLogic(c, s.Core).Generate(&types.PlanRequest{
		AgeCohort:       req.AgeCohort,
		Domain:          req.Domain,
		Component:       req.Component,
		PlayTypeName:    req.PlayType.Name,
		PlayTypeContext: req.PlayType.Context,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}
