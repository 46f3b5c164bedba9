package controller

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
)

type PDFController struct {
	PDFService *service.PDFService
}

func NewPDFController(pdfService *service.PDFService) *PDFController {
	return &PDFController{PDFService: pdfService}
}

// ListHandouts godoc
// @Summary 获取讲义列表
// @Description 返回全部已上传的任务讲义
// @Tags 讲义
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.PDFData} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/pdfs [get]
func (c *PDFController) ListHandouts(ctx *gin.Context) {
	list, err := c.PDFService.Handouts(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetHandout godoc
// @Summary 获取单个讲义
// @Description 按任务讲义标识查询讲义记录
// @Tags 讲义
// @Produce  json
// @Security ApiKeyAuth
// @Param   taskId path string true "讲义标识"
// @Success 200 {object} util.Response{data=model.PDFData} "成功"
// @Failure 404 {object} util.Response "讲义不存在"
// @Router /api/pdfs/{taskId} [get]
func (c *PDFController) GetHandout(ctx *gin.Context) {
	data, err := c.PDFService.Handout(ctx.Request.Context(), ctx.Param("taskId"))
	if err != nil {
		if errors.Is(err, util.ErrPDFNotFound) {
			util.NotFound(ctx, "讲义不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, data)
}

// UploadHandout godoc
// @Summary 上传任务讲义
// @Description 上传或替换某任务的PDF讲义
// @Tags 讲义
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   taskId path string true "讲义标识"
// @Param   file formData file true "PDF文件"
// @Success 200 {object} util.Response{data=model.PDFData} "成功"
// @Failure 400 {object} util.Response "文件类型不支持或任务无讲义槽位"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/admin/pdfs/{taskId} [post]
func (c *PDFController) UploadHandout(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// 不信任客户端声明的 Content-Type，按文件头探测
	mimeType, err := util.ValidateMimeType(file, []string{util.MimePDF})
	if err != nil {
		util.BadRequest(ctx, "只接受 PDF 文件，检测到 "+mimeType)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	data, err := c.PDFService.SaveHandout(
		ctx.Request.Context(),
		ctx.Param("taskId"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		mimeType,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnknownTask):
			util.BadRequest(ctx, "该任务没有讲义槽位")
		case errors.Is(err, util.ErrProviderUnavailable):
			util.Error(ctx, 502, "存储服务暂不可用")
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, data)
}

// DeleteHandout godoc
// @Summary 删除任务讲义
// @Description 删除讲义记录及存储中的文件
// @Tags 讲义
// @Produce  json
// @Security ApiKeyAuth
// @Param   taskId path string true "讲义标识"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "讲义不存在"
// @Router /api/admin/pdfs/{taskId} [delete]
func (c *PDFController) DeleteHandout(ctx *gin.Context) {
	if err := c.PDFService.RemoveHandout(ctx.Request.Context(), ctx.Param("taskId")); err != nil {
		if errors.Is(err, util.ErrPDFNotFound) {
			util.NotFound(ctx, "讲义不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
