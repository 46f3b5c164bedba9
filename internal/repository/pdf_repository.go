package repository

import (
	"context"
	"time"

	"weiterbildung_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PDFRepository struct {
	DB *gorm.DB
}

func NewPDFRepository(db *gorm.DB) *PDFRepository {
	return &PDFRepository{DB: db}
}

// Upsert 每个任务最多一份讲义，重复上传覆盖旧的元数据
func (r *PDFRepository) Upsert(ctx context.Context, pdf *model.PDFData) error {
	if pdf.UploadedAt.IsZero() {
		pdf.UploadedAt = time.Now()
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(pdf).
		Error
}

func (r *PDFRepository) FindByTaskID(ctx context.Context, taskID string) (*model.PDFData, error) {
	var pdf model.PDFData
	err := r.DB.WithContext(ctx).First(&pdf, "task_id = ?", taskID).Error
	if err != nil {
		return nil, err
	}
	return &pdf, nil
}

func (r *PDFRepository) FindAll(ctx context.Context) ([]model.PDFData, error) {
	var pdfs []model.PDFData
	err := r.DB.WithContext(ctx).Find(&pdfs).Error
	return pdfs, err
}

func (r *PDFRepository) Delete(ctx context.Context, taskID string) error {
	return r.DB.WithContext(ctx).Delete(&model.PDFData{}, "task_id = ?", taskID).Error
}
