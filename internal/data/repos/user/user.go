package user

import (
	"gorm.io/gorm"

	types "github.com/yungbote/servicehub-backend/internal/domain"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []int64) ([]*types.User, error)
	FullDeleteByIDs(dbc dbctx.Context, userIDs []int64) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := t.WithContext(dbc.Context()).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []int64) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(dbc.Context()).Where("id IN ?", userIDs).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) FullDeleteByIDs(dbc dbctx.Context, userIDs []int64) error {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Context()).Where("id IN ?", userIDs).Delete(&types.User{}).Error
}
