package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=64"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=64"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	City      string `json:"city" form:"city" binding:"max=64"`
	Country   string `json:"country" form:"country" binding:"max=64"`
}

type RegisterResponse struct {
	TemporaryPassword string `json:"temporary_password"`
}

func (s *HttpSrv) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	tempPassword, err := v1.NewUserLogic(c, s.Core).Register(req.FirstName, req.LastName, req.Email, req.City, req.Country)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, RegisterResponse{TemporaryPassword: tempPassword})
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewUserLogic(c, s.Core).Login(req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

func (s *HttpSrv) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := v1.NewAuthLogic(c, s.Core).Logout(token); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) GetProfile(c *gin.Context) {
	logic, err := v1.NewAuthedUserLogic(c, s.Core)
	if err != nil {
		response.APIError(c, err)
		return
	}

	user, err := logic.Profile()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, user)
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=64"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=64"`
	City      string `json:"city" form:"city" binding:"max=64"`
	Country   string `json:"country" form:"country" binding:"max=64"`
}

func (s *HttpSrv) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic, err := v1.NewAuthedUserLogic(c, s.Core)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if err = logic.UpdateProfile(req.FirstName, req.LastName, req.City, req.Country); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" form:"new_password" binding:"required"`
}

func (s *HttpSrv) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	logic, err := v1.NewAuthedUserLogic(c, s.Core)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if err = logic.ChangePassword(req.NewPassword); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

// UserMeta echoes the resolved claims, the frontend uses it to restore a
// session after reload.
func (s *HttpSrv) UserMeta(c *gin.Context) {
	logic, err := v1.NewAuthedUserLogic(c, s.Core)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, logic.GetUserInfo())
}
