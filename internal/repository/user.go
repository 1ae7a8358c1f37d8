package repository

import (
	"github.com/komunitech/komunitech/internal/domain/user"
	"gorm.io/gorm"
)

type UserQueryParams struct {
	Search   string
	IsActive *bool
	Role     *user.Role
	Page     Page
}

type UserRepo interface {
	GetUserByID(id uint) (user.User, error)
	GetUserByUsername(username string) (user.User, error)
	GetUserByEmail(email string) (user.User, error)
	CreateUser(u *user.User) error
	SaveUser(u *user.User) error
	DeleteUser(id uint) error
	ListUsersPaging(params UserQueryParams) ([]user.User, int64, error)
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) GetUserByID(id uint) (user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	return u, err
}

func (r *DBUserRepo) GetUserByUsername(username string) (user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	return u, err
}

func (r *DBUserRepo) GetUserByEmail(email string) (user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	return u, err
}

func (r *DBUserRepo) CreateUser(u *user.User) error {
	return translate(r.db.Create(u).Error)
}

func (r *DBUserRepo) SaveUser(u *user.User) error {
	return translate(r.db.Save(u).Error)
}

// DeleteUser removes the user; foreign keys cascade to everything the user owns.
func (r *DBUserRepo) DeleteUser(id uint) error {
	res := r.db.Delete(&user.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBUserRepo) ListUsersPaging(params UserQueryParams) ([]user.User, int64, error) {
	var (
		users []user.User
		total int64
	)
	query := r.db.Model(&user.User{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like, like)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.Role != nil {
		query = query.Where("role = ?", *params.Role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(params.Page.Limit()).Offset(params.Page.Offset()).
		Find(&users).Error
	return users, total, err
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
