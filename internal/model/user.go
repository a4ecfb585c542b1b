package model

import (
	"time"
)

// User credential record. Email uniqueness is enforced by the index,
// which is the final backstop against concurrent signups.
// User 凭证记录，邮箱唯一性由索引兜底
type User struct {
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password" json:"password"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`

	Grants []UserNote `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE" json:"-"`
}
