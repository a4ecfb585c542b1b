package dao

import (
	"context"
	"time"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建笔记仓储实例
func NewNoteRepository(d *Dao) domain.NoteRepository {
	return &noteRepository{dao: d}
}

func (r *noteRepository) toDomain(m *model.Note) (*domain.Note, error) {
	note := &domain.Note{}
	if err := copier.Copy(note, m); err != nil {
		return nil, err
	}
	return note, nil
}

// CreateWithGrant inserts the note row and the creator's grant row in one
// transaction. A failure in either write leaves no partial state.
// CreateWithGrant 在单个事务中写入笔记与创建者授权行
func (r *noteRepository) CreateWithGrant(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := &model.Note{}
	if err := copier.Copy(m, note); err != nil {
		return nil, err
	}

	err := r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		grant := &model.UserNote{UID: m.CreatedByUID, NoteID: m.ID}
		return tx.Create(grant).Error
	})
	if err != nil {
		return nil, mapError(err)
	}
	return r.toDomain(m)
}

// GetByID 根据笔记ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return r.toDomain(&m)
}

// Update overwrites title and body and records the updater. The write is
// conditioned on the id existing: zero affected rows means the note
// vanished between the access check and the update.
func (r *noteRepository) Update(ctx context.Context, id int64, title, body string, updaterUID int64) (*domain.Note, error) {
	res := r.dao.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(map[string]any{
		"title":                   title,
		"body":                    body,
		"last_updated_by_user_id": updaterUID,
		"updated_at":              time.Now(),
	})
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade removes the note and every grant row pointing at it, so
// no orphaned grants remain.
// DeleteCascade 删除笔记并级联删除其全部授权行
func (r *noteRepository) DeleteCascade(ctx context.Context, id int64) error {
	err := r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&model.UserNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Note{}, id).Error
	})
	return mapError(err)
}

// ListByUID joins the grant relation to the note table. No ORDER BY:
// the order is implementation-defined.
func (r *noteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []model.Note
	err := r.dao.db.WithContext(ctx).Model(&model.Note{}).
		Joins("JOIN user_note ON user_note.note_id = note.id").
		Where("user_note.uid = ?", uid).
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}

	notes := make([]*domain.Note, 0, len(ms))
	for i := range ms {
		note, err := r.toDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}
