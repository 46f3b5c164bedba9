package model

import "time"

// PDFData 每个任务的讲义元数据，键为任务目录中的 pdfId（如 "task1"）
type PDFData struct {
	TaskID     string    `gorm:"primaryKey;size:32" json:"taskId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (PDFData) TableName() string {
	return "pdfs"
}
