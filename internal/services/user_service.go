package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkowalczyk/timesheet-api/internal/constants"
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingName          = errors.New("first and last name are required")
	ErrMissingService       = errors.New("service label is required")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrSupervisorNotFound   = errors.New("supervisor does not exist")
	ErrSupervisorCycle      = errors.New("supervisor assignment would create a cycle")
)

// UserService handles the user directory: creation, listing, and the
// service/supervisor bulk updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Service   string
	Password  string
}

// CreateUser creates a new user with a generated login identifier.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(input.Service) == "" {
		return nil, ErrMissingService
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Service:      strings.TrimSpace(input.Service),
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateWithGeneratedLogin(user); err != nil {
		if errors.Is(err, repository.ErrCreateUser) {
			return nil, ErrFailedToCreateUser
		}
		return nil, fmt.Errorf("failed to complete user creation: %w", err)
	}

	return user, nil
}

// List returns all users.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// UserUpdateInput represents one row of the bulk user update form.
type UserUpdateInput struct {
	UserID       uint64
	Service      string
	SupervisorID *uint64
}

// BulkUpdate validates and applies service label and supervisor changes
// for a set of users in one transaction. The cycle check runs against the
// hierarchy as it will look after the whole batch, so two updates cannot
// combine into a cycle that each one alone would pass.
func (s *UserService) BulkUpdate(updates []UserUpdateInput) error {
	overlay := make(map[uint64]*uint64, len(updates))
	for _, u := range updates {
		overlay[u.UserID] = u.SupervisorID
	}

	repoUpdates := make([]repository.UserUpdate, 0, len(updates))
	for _, u := range updates {
		if u.SupervisorID != nil {
			if err := s.checkSupervisor(u.UserID, *u.SupervisorID, overlay); err != nil {
				return err
			}
		}
		repoUpdates = append(repoUpdates, repository.UserUpdate{
			UserID:       u.UserID,
			Service:      strings.TrimSpace(u.Service),
			SupervisorID: u.SupervisorID,
		})
	}

	return s.userRepo.BulkUpdate(repoUpdates)
}

// DirectReports returns the users directly supervised by the given user.
func (s *UserService) DirectReports(supervisorID uint64) ([]models.User, error) {
	return s.userRepo.ListDirectReports(supervisorID)
}

// checkSupervisor verifies the supervisor exists and that the assignment
// keeps the hierarchy a tree: walking up from the proposed supervisor must
// never reach the user being updated. The overlay holds this batch's
// pending assignments; the visited set stops the walk on data that already
// contains a cycle.
func (s *UserService) checkSupervisor(userID, supervisorID uint64, overlay map[uint64]*uint64) error {
	if supervisorID == userID {
		return ErrSupervisorCycle
	}

	visited := map[uint64]bool{userID: true}
	current := supervisorID
	for {
		if visited[current] {
			return ErrSupervisorCycle
		}
		visited[current] = true

		var next *uint64
		if pending, ok := overlay[current]; ok && current != userID {
			// Confirm the user row exists even when the link comes
			// from the batch itself.
			if _, err := s.userRepo.FindByID(current); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSupervisorNotFound
				}
				return fmt.Errorf("failed to resolve supervisor chain: %w", err)
			}
			next = pending
		} else {
			supervisor, err := s.userRepo.FindByID(current)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSupervisorNotFound
				}
				return fmt.Errorf("failed to resolve supervisor chain: %w", err)
			}
			next = supervisor.SupervisorID
		}

		if next == nil {
			return nil
		}
		if *next == userID {
			return ErrSupervisorCycle
		}
		current = *next
	}
}
