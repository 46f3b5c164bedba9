package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// swagger:model CommentRequest
type CommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// PostComment godoc
// @Summary 发布评论
// @Description 以当前用户身份在留言板发布一条评论
// @Tags 留言板
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment} "创建成功"
// @Failure 400 {object} util.Response "内容为空或超长"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/comments [post]
func (c *CommentController) PostComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.Post(ctx.Request.Context(), claims.UserID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidComment):
			util.BadRequest(ctx, "评论内容为空或超长")
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary 获取评论列表
// @Description 按时间倒序返回全部评论
// @Tags 留言板
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Comment} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	comments, err := c.CommentService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 作者本人或管理员删除一条评论
// @Tags 留言板
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "无权删除他人评论"
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.CommentService.Delete(ctx.Request.Context(), ctx.Param("id"), claims.UserID, util.IsAdmin(claims))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCommentNotFound):
			util.NotFound(ctx, "评论不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
