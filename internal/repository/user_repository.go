package repository

import (
	"errors"
	"fmt"

	"github.com/mkowalczyk/timesheet-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the creation transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrUserMissing is returned by BulkUpdate when a referenced user does not exist.
	ErrUserMissing = errors.New("user repository: user not found")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithGeneratedLogin creates a user and assigns the login identifier atomically.
// The identifier concatenates the name parts with a running sequence; the sequence
// is bumped past any identifier already taken so sequential creation never collides.
func (r *GormUserRepository) CreateWithGeneratedLogin(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		seq := count + 1
		for {
			login := fmt.Sprintf("%s%s%d", user.FirstName, user.LastName, seq)

			var taken int64
			if err := tx.Model(&models.User{}).Where("login = ?", login).Count(&taken).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateUser, err)
			}
			if taken == 0 {
				user.Login = login
				break
			}
			seq++
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin finds a user by login identifier
func (r *GormUserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users with their supervisor preloaded
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Supervisor").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// BulkUpdate applies service label and supervisor changes in one transaction
func (r *GormUserRepository) BulkUpdate(updates []UserUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&models.User{}).
				Where("id = ?", u.UserID).
				Updates(map[string]interface{}{
					"service":       u.Service,
					"supervisor_id": u.SupervisorID,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: id %d", ErrUserMissing, u.UserID)
			}
		}
		return nil
	})
}

// ListDirectReports returns users whose supervisor is the given user,
// with their campaigns preloaded
func (r *GormUserRepository) ListDirectReports(supervisorID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Campaigns").
		Where("supervisor_id = ? AND id <> ?", supervisorID, supervisorID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
