package controller

import (
	"github.com/gin-gonic/gin"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// CatalogController 任务目录是编译期常量，无需服务层
type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// GetCatalog godoc
// @Summary 获取课程目录
// @Description 返回全部小组、任务和评价问题的定义
// @Tags 目录
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/catalog [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	groups := make([]model.GroupInfo, 0, len(model.GroupOrder))
	for _, g := range model.GroupOrder {
		groups = append(groups, model.Groups[g])
	}

	util.Success(ctx, gin.H{
		"groups":          groups,
		"tasks":           model.Tasks,
		"ratingQuestions": model.RatingQuestions,
		"ratingOptions":   model.RatingOptions,
		"totalSubtasks":   model.TotalSubtasks(),
	})
}
