package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

type CreateTeacherRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=64"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=64"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	City      string `json:"city" form:"city" binding:"max=64"`
	Country   string `json:"country" form:"country" binding:"max=64"`
}

func (s *HttpSrv) CreateTeacher(c *gin.Context) {
	var req CreateTeacherRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	tempPassword, err := v1.NewAdminLogic(c, s.Core).CreateTeacher(req.FirstName, req.LastName, req.Email, req.City, req.Country)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, RegisterResponse{TemporaryPassword: tempPassword})
}

type ListUsersRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize"`
}

type ListUsersResponse struct {
	List  []types.User `json:"list"`
	Total int64        `json:"total"`
}

func (s *HttpSrv) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewAdminLogic(c, s.Core).ListUsers(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListUsersResponse{List: list, Total: total})
}

func (s *HttpSrv) DeleteUser(c *gin.Context) {
	if err := v1.NewAdminLogic(c, s.Core).DeleteUser(c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type ListActivityLogsResponse struct {
	List  []types.ActivityLogDetail `json:"list"`
	Total int64                     `json:"total"`
}

func (s *HttpSrv) ListActivityLogs(c *gin.Context) {
	var req ListUsersRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewAdminLogic(c, s.Core).ListActivityLogs(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListActivityLogsResponse{List: list, Total: total})
}

type ListFeedbackLogsResponse struct {
	List  []types.FeedbackLog `json:"list"`
	Total int64               `json:"total"`
}

func (s *HttpSrv) ListFeedbackLogs(c *gin.Context) {
	var req ListUsersRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	page, pageSize := normalizePagination(req.Page, req.PageSize)

	list, total, err := v1.NewAdminLogic(c, s.Core).ListFeedbackLogs(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListFeedbackLogsResponse{List: list, Total: total})
}
