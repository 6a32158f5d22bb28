package payload

import (
	"time"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

// Response is the envelope of every JSON response.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// UserResponse is an account without its credentials and one-time secrets.
type UserResponse struct {
	ID              string             `json:"id"`
	Username        string             `json:"username"`
	Email           string             `json:"email"`
	Role            model.Role         `json:"role"`
	IsActive        bool               `json:"is_active"`
	IsEmailVerified bool               `json:"is_email_verified"`
	Bio             string             `json:"bio,omitempty"`
	ProfileImage    string             `json:"profile_image,omitempty"`
	ContactInfo     *model.ContactInfo `json:"contact_info,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:              u.ID.Hex(),
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		Bio:             u.Bio,
		ProfileImage:    u.ProfileImage,
		ContactInfo:     u.ContactInfo,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ArtistResponse is the public profile shown next to artworks.
type ArtistResponse struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	Bio          string             `json:"bio,omitempty"`
	ProfileImage string             `json:"profile_image,omitempty"`
	ContactInfo  *model.ContactInfo `json:"contact_info,omitempty"`
}

func NewArtistResponse(u *model.User) *ArtistResponse {
	if u == nil {
		return nil
	}
	return &ArtistResponse{
		ID:           u.ID.Hex(),
		Username:     u.Username,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		ContactInfo:  u.ContactInfo,
	}
}

type UserListResponse struct {
	Users      []UserResponse    `json:"users"`
	Pagination *types.Pagination `json:"pagination"`
}

func NewUserListResponse(users []*model.User, pagination *types.Pagination) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return UserListResponse{Users: out, Pagination: pagination}
}

// UserStatusResponse reports the activation state after a toggle.
type UserStatusResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func NewUserStatusResponse(u *model.User) UserStatusResponse {
	return UserStatusResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
