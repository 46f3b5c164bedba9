package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment 留言板条目。username/group 是发帖时刻的快照，
// 之后不再与用户记录同步（设计决定，不是缺陷）。
// 留言只创建和删除，从不原地更新。
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index" json:"userId"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Group     string    `gorm:"size:32" json:"group"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
