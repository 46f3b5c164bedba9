package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=30"`
	Group    string `json:"group" binding:"required"`
}

// Register godoc
// @Summary 注册新参与者
// @Description 用用户名和小组注册，返回一次性登录码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=service.RegistrationResult} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名已被使用"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	_, result, err := c.AuthService.RegisterParticipant(ctx.Request.Context(), req.Username, model.Group(req.Group))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDuplicateIdentity):
			util.Conflict(ctx, "该用户名已被使用")
		case errors.Is(err, util.ErrRegistrationFailed):
			util.BadRequest(ctx, "注册失败: "+err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// swagger:model LoginRequest
type LoginRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// Login godoc
// @Summary 参与者登录
// @Description 用六位登录码换取JWT令牌，码不区分大小写
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录码"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "登录码无效"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.LoginWithCode(ctx.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCodeNotFound), errors.Is(err, util.ErrInvalidCredential):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"userId":   user.UserID,
			"username": user.Username,
			"group":    user.Group,
			"role":     user.Role,
		},
	})
}

// swagger:model AdminLoginRequest
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin godoc
// @Summary 管理员登录
// @Description 邮箱加密码登录，仅管理员账号能换取令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body AdminLoginRequest true "管理员凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "凭据无效"
// @Failure 403 {object} util.Response "非管理员账号"
// @Router /api/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.LoginAdmin(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMalformedIdentifier):
			util.BadRequest(ctx, "邮箱格式不正确")
		case errors.Is(err, util.ErrInvalidCredential):
			util.Unauthorized(ctx)
		case errors.Is(err, util.ErrNotAuthorized):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"userId":   user.UserID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Logout godoc
// @Summary 登出
// @Description 吊销当前令牌，之后同一令牌不再可用
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	c.AuthService.Logout(ctx.Request.Context(), claims)
	util.Success(ctx, nil)
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Description 获取当前已认证用户的账号信息和完成度
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, util.ErrInvalidCredential) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"userId":    user.UserID,
		"username":  user.Username,
		"group":     user.Group,
		"email":     user.Email,
		"role":      user.Role,
		"isAdmin":   util.IsAdmin(claims),
		"createdAt": user.CreatedAt,
		"progress":  service.UserProgress(user),
	})
}
