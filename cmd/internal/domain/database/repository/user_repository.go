package repository

import (
	"agendamento/cmd/internal/domain/entity"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users found among ids, keyed by id. Missing ids are
// simply absent from the map.
func (u *DefaultUserRepository) FindByIDs(ctx context.Context, ids []int) (map[int]*entity.User, error) {
	found := make(map[int]*entity.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var users []*entity.User
	if err := u.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		found[user.ID] = user
	}
	return found, nil
}

func (u *DefaultUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	err := u.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (u *DefaultUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates user. A clash on the email index comes back as
// ErrDuplicateKey.
func (u *DefaultUserRepository) Save(ctx context.Context, user *entity.User) error {
	return translate(u.db.WithContext(ctx).Save(user).Error)
}

func (u *DefaultUserRepository) Delete(ctx context.Context, user *entity.User) error {
	return u.db.WithContext(ctx).Delete(user).Error
}
