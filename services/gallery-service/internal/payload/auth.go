package payload

import "github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Bio      string `json:"bio"      validate:"max=500"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Code        string `json:"code"         validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type UpdateProfileRequest struct {
	Username    *string            `json:"username"     validate:"omitempty,notblank,max=50"`
	Bio         *string            `json:"bio"          validate:"omitempty,max=500"`
	ContactInfo *model.ContactInfo `json:"contact_info"`
}
