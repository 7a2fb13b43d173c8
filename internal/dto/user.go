package dto

import (
	"github.com/mkowalczyk/timesheet-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Login        string  `json:"login"`
	Service      string  `json:"service"`
	SupervisorID *uint64 `json:"supervisor_id"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Login:        user.Login,
		Service:      user.Service,
		SupervisorID: user.SupervisorID,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
