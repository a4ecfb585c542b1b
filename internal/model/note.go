package model

import (
	"time"
)

// Note content record. CreatedByUID is set once at creation and never
// touched again; LastUpdatedByUID follows the most recent updater.
type Note struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title            string    `gorm:"column:title" json:"title"`
	Body             string    `gorm:"column:body" json:"body"`
	CreatedByUID     int64     `gorm:"column:created_by_user_id" json:"createdByUserId"`
	LastUpdatedByUID int64     `gorm:"column:last_updated_by_user_id" json:"lastUpdatedByUserId"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`

	Grants []UserNote `gorm:"foreignKey:NoteID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}
