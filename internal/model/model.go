package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates one model table, or every table when key is empty.
// AutoMigrate 迁移单个模型表，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Note":
		return db.AutoMigrate(Note{})

	case "UserNote":
		return db.AutoMigrate(UserNote{})
	}
	return db.AutoMigrate(User{}, Note{}, UserNote{})
}
