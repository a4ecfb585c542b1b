package dao

import (
	"context"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/model"
)

type grantRepository struct {
	dao *Dao
}

// NewGrantRepository 创建授权关系仓储实例
func NewGrantRepository(d *Dao) domain.GrantRepository {
	return &grantRepository{dao: d}
}

// HasAccess reports whether a grant row exists for (uid, noteID).
func (r *grantRepository) HasAccess(ctx context.Context, uid, noteID int64) (bool, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).Model(&model.UserNote{}).
		Where("uid = ? AND note_id = ?", uid, noteID).
		Count(&count).Error
	if err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// Create adds a grant row. The composite unique index rejects duplicate
// pairs with domain.ErrDuplicate.
func (r *grantRepository) Create(ctx context.Context, uid, noteID int64) error {
	grant := &model.UserNote{UID: uid, NoteID: noteID}
	return mapError(r.dao.db.WithContext(ctx).Create(grant).Error)
}
