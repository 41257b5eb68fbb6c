package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Nickname  *string        `gorm:"type:varchar(100)"`
	AvatarURL *string        `gorm:"type:text"`
	Bio       *string        `gorm:"type:text"`
	Email     *string        `gorm:"type:varchar(255)"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
