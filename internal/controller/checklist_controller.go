package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type ChecklistController struct {
	ChecklistService *service.ChecklistService
}

func NewChecklistController(checklistService *service.ChecklistService) *ChecklistController {
	return &ChecklistController{ChecklistService: checklistService}
}

// GetChecklist godoc
// @Summary 获取打卡清单
// @Description 返回当前用户的勾选记录、评分和完成度
// @Tags 打卡
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ChecklistView} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/checklist [get]
func (c *ChecklistController) GetChecklist(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ChecklistService.Checklist(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ToggleSubtask godoc
// @Summary 切换子任务勾选
// @Description 勾选未完成的子任务，或取消已完成的勾选
// @Tags 打卡
// @Produce  json
// @Security ApiKeyAuth
// @Param   taskId path int true "任务 id"
// @Param   index path int true "子任务下标"
// @Success 200 {object} util.Response{data=service.ChecklistView} "成功"
// @Failure 400 {object} util.Response "任务或子任务不存在"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/checklist/tasks/{taskId}/subtasks/{index}/toggle [post]
func (c *ChecklistController) ToggleSubtask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.Atoi(ctx.Param("taskId"))
	if err != nil {
		util.BadRequest(ctx, "任务 id 必须是整数")
		return
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "子任务下标必须是整数")
		return
	}

	view, err := c.ChecklistService.ToggleSubtask(ctx.Request.Context(), claims.UserID, taskID, index)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// swagger:model RatingRequest
type RatingRequest struct {
	Enjoyed *int `json:"enjoyed" binding:"required"`
	Useful  *int `json:"useful" binding:"required"`
	Learned *int `json:"learned" binding:"required"`
}

// SubmitRating godoc
// @Summary 提交任务评价
// @Description 三个问题各选一档（0–3），每个任务只能评一次
// @Tags 打卡
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   taskId path int true "任务 id"
// @Param   body body RatingRequest true "评价内容"
// @Success 200 {object} util.Response{data=service.ChecklistView} "成功"
// @Failure 400 {object} util.Response "评分超出范围"
// @Failure 401 {object} util.Response "未授权"
// @Failure 409 {object} util.Response "该任务已评价过"
// @Router /api/checklist/tasks/{taskId}/rating [post]
func (c *ChecklistController) SubmitRating(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.Atoi(ctx.Param("taskId"))
	if err != nil {
		util.BadRequest(ctx, "任务 id 必须是整数")
		return
	}

	var req RatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.ChecklistService.SubmitRating(ctx.Request.Context(), claims.UserID, taskID, *req.Enjoyed, *req.Useful, *req.Learned)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyRated) {
			util.Conflict(ctx, "该任务已评价过")
			return
		}
		c.fail(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *ChecklistController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnknownTask), errors.Is(err, util.ErrUnknownSubtask), errors.Is(err, util.ErrInvalidRating):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.Unauthorized(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
