package dao

import (
	"context"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/model"

	"github.com/jinzhu/copier"
)

type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(d *Dao) domain.UserRepository {
	return &userRepository{dao: d}
}

func (r *userRepository) toDomain(m *model.User) (*domain.User, error) {
	user := &domain.User{}
	if err := copier.Copy(user, m); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail 根据电子邮件获取用户信息
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return r.toDomain(&m)
}

// GetByUID 根据用户ID获取用户信息
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return r.toDomain(&m)
}

// Create 创建用户，邮箱唯一索引兜底并发注册
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := &model.User{}
	if err := copier.Copy(m, user); err != nil {
		return nil, err
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toDomain(m)
}
