package controller

import (
	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// GetStatistics godoc
// @Summary 获取统计视图
// @Description 小组概览和逐任务统计，可用 group 参数过滤任务统计
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Param   group query string false "小组标识"
// @Success 200 {object} util.Response{data=service.Overview} "成功"
// @Failure 400 {object} util.Response "小组不存在"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/statistics [get]
func (c *StatsController) GetStatistics(ctx *gin.Context) {
	group := model.Group(ctx.Query("group"))
	if group != "" && !model.ValidGroup(group) {
		util.BadRequest(ctx, "未知的小组: "+string(group))
		return
	}

	view, err := c.StatsService.Overview(ctx.Request.Context(), group)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
