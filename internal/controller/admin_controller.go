package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type AdminController struct {
	AdminService *service.AdminService
	StatsService *service.StatsService
}

func NewAdminController(adminService *service.AdminService, statsService *service.StatsService) *AdminController {
	return &AdminController{AdminService: adminService, StatsService: statsService}
}

// ListUsers godoc
// @Summary 获取参与者列表
// @Description 返回全部参与者及其完成度
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.UserOverview} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.AdminService.ListUsers(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ResetUserProgress godoc
// @Summary 重置参与者进度
// @Description 清空该参与者的勾选记录和评分，账号保留
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/reset [post]
func (c *AdminController) ResetUserProgress(ctx *gin.Context) {
	if err := c.AdminService.ResetProgress(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary 删除参与者
// @Description 删除单个参与者账号，管理员账号不可删
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "不能删除管理员账号"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.AdminService.DeleteUser(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteAllUsers godoc
// @Summary 删除全部参与者
// @Description 逐个删除所有参与者账号并返回逐条成败汇总
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.BulkDeleteResult} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/admin/users [delete]
func (c *AdminController) DeleteAllUsers(ctx *gin.Context) {
	result, err := c.AdminService.DeleteAllParticipants(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetDashboard godoc
// @Summary 管理面板概览
// @Description 参与者总数、过半人数和各组平均进度
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardSummary} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	summary, err := c.StatsService.Dashboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// ExportData godoc
// @Summary 导出全部数据
// @Description 一次性导出全部用户和评论，附导出时间戳
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExportSnapshot} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/admin/export [get]
func (c *AdminController) ExportData(ctx *gin.Context) {
	snapshot, err := c.AdminService.Export(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

func (c *AdminController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "用户不存在")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
