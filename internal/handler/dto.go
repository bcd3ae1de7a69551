package handler

import (
	"time"

	"github.com/campushub/campushub/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is never
// part of it.
type UserDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	ProfileImageURL   string  `json:"profileImageUrl,omitempty"`
	LastLoginAt       *string `json:"lastLoginAt"`
	LastLoginIP       string  `json:"lastLoginIp,omitempty"`
	LastLoginLocation *string `json:"lastLoginLocation"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		ProfileImageURL:   u.ProfileImageURL,
		LastLoginIP:       u.LastLoginIP,
		LastLoginLocation: u.LastLoginLocation,
		CreatedAt:         u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		dto.LastLoginAt = &s
	}
	return dto
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}
