package model

import (
	"time"
)

type UserRole string

const (
	Participant UserRole = "participant"
	Admin       UserRole = "admin"
)

// TaskRating 一次任务评价，三个问题一次性提交
type TaskRating struct {
	Enjoyed   int    `json:"enjoyed"`
	Useful    int    `json:"useful"`
	Learned   int    `json:"learned"`
	Timestamp string `json:"timestamp"`
}

// Value 按问题标识取值，未知问题返回 -1
func (r TaskRating) Value(q RatingQuestionID) int {
	switch q {
	case RatingEnjoyed:
		return r.Enjoyed
	case RatingUseful:
		return r.Useful
	case RatingLearned:
		return r.Learned
	}
	return -1
}

// SubtaskSet 键为 "<taskId>-<subtaskIndex>"，值为完成时间（ISO-8601）。
// 键存在即已完成。
type SubtaskSet map[string]string

// RatingSet 键为任务 id，每任务至多一条评价，只能通过重置清除
type RatingSet map[int]TaskRating

// swagger:model User
type User struct {
	UserID            string     `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	Username          string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Group             Group      `gorm:"size:32;index" json:"group"`
	Code              string     `gorm:"size:12;uniqueIndex;not null" json:"code"`
	Email             string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"size:100;not null" json:"-"`
	Role              UserRole   `gorm:"type:enum('participant','admin');default:'participant'" json:"role"`
	IsVirtual         bool       `gorm:"default:true" json:"isVirtual"`
	CompletedSubtasks SubtaskSet `gorm:"type:json;serializer:json" json:"completedSubtasks"`
	Ratings           RatingSet  `gorm:"type:json;serializer:json" json:"ratings"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
