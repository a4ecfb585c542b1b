package model

import (
	"time"
)

// UserNote is one grant row: the pair (uid, note_id) exists iff the user
// has full read/update access to the note. The composite unique index
// guarantees no duplicate grants.
// UserNote 授权关系行，(uid, note_id) 组合唯一
type UserNote struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64     `gorm:"column:uid;uniqueIndex:idx_user_note" json:"uid"`
	NoteID    int64     `gorm:"column:note_id;uniqueIndex:idx_user_note" json:"noteId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}
