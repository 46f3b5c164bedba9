package database

import (
	"fmt"
	"log"

	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, admin *config.AdminConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Comment{},
		&model.PDFData{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedAdmin(db, admin); err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdmin 管理员账号由运维侧预置，不通过注册接口产生。
// 引导凭据来自配置（本地开发有文档化的回退值）。
func seedAdmin(db *gorm.DB, admin *config.AdminConfig) error {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	row := &model.User{
		UserID:            uuid.New().String(),
		Username:          "Admin",
		Code:              admin.Code,
		Email:             admin.Email,
		PasswordHash:      string(hash),
		Role:              model.Admin,
		IsVirtual:         false,
		CompletedSubtasks: model.SubtaskSet{},
		Ratings:           model.RatingSet{},
	}

	if err := db.Create(row).Error; err != nil {
		return err
	}

	log.Printf("Admin account seeded (%s)", admin.Email)
	return nil
}
