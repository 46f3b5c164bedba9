package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
	"weiterbildung_backend/pkg/logger"
)

// PDFStore 讲义记录的读写
type PDFStore interface {
	Upsert(ctx context.Context, data *model.PDFData) error
	FindByTaskID(ctx context.Context, taskID string) (*model.PDFData, error)
	FindAll(ctx context.Context) ([]model.PDFData, error)
	Delete(ctx context.Context, taskID string) error
}

// PDFService 任务讲义的上传与下发
type PDFService struct {
	PDFRepo PDFStore
	Storage *StorageService
}

func NewPDFService(pdfRepo PDFStore, storage *StorageService) *PDFService {
	return &PDFService{PDFRepo: pdfRepo, Storage: storage}
}

// SaveHandout 上传或替换某任务的讲义。目标任务必须在目录里
// 声明了讲义槽位，文件必须是 PDF。
func (s *PDFService) SaveHandout(ctx context.Context, pdfID, fileName string, reader io.Reader, size int64, contentType string) (*model.PDFData, error) {
	if !handoutSlotExists(pdfID) {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownTask, pdfID)
	}
	if !util.IsPDF(contentType) {
		return nil, fmt.Errorf("不支持的文件类型: %s", contentType)
	}

	objectName := fmt.Sprintf("handouts/%s.pdf", pdfID)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, util.MimePDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrProviderUnavailable, err)
	}

	data := &model.PDFData{
		TaskID:     pdfID,
		FileName:   fileName,
		URL:        url,
		UploadedAt: time.Now(),
	}
	if err := s.PDFRepo.Upsert(ctx, data); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return data, nil
}

// Handout 查询某任务的讲义记录
func (s *PDFService) Handout(ctx context.Context, pdfID string) (*model.PDFData, error) {
	data, err := s.PDFRepo.FindByTaskID(ctx, pdfID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPDFNotFound
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return data, nil
}

// Handouts 全部已上传的讲义
func (s *PDFService) Handouts(ctx context.Context) ([]model.PDFData, error) {
	list, err := s.PDFRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return list, nil
}

// RemoveHandout 删除讲义记录和存储里的文件。
// 文件删除失败只记录不阻塞，记录删除是权威操作。
func (s *PDFService) RemoveHandout(ctx context.Context, pdfID string) error {
	if _, err := s.Handout(ctx, pdfID); err != nil {
		return err
	}

	if err := s.PDFRepo.Delete(ctx, pdfID); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	objectName := fmt.Sprintf("handouts/%s.pdf", pdfID)
	if err := s.Storage.Delete(ctx, objectName); err != nil {
		logger.Log.Warn("handout file deletion failed, record already removed",
			zap.String("object", objectName), zap.Error(err))
	}
	return nil
}

func handoutSlotExists(pdfID string) bool {
	for _, task := range model.Tasks {
		if task.PDFID != "" && task.PDFID == pdfID {
			return true
		}
	}
	return false
}
