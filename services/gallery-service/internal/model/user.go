package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the capability class of an account.
type Role string

const (
	RoleArtist     Role = "artist"
	RoleSuperAdmin Role = "super_admin"
)

// User represents an artist or the super admin.
type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Username        string        `bson:"username"`
	Email           string        `bson:"email"`
	PasswordHash    string        `bson:"password_hash"`
	Role            Role          `bson:"role"`
	IsActive        bool          `bson:"is_active"`
	IsEmailVerified bool          `bson:"is_email_verified"`
	Bio             string        `bson:"bio,omitempty"`
	ProfileImage    string        `bson:"profile_image,omitempty"`
	ContactInfo     *ContactInfo  `bson:"contact_info,omitempty"`

	// One-time secrets. Both pairs are unset once consumed.
	EmailVerificationToken     string     `bson:"email_verification_token,omitempty"`
	EmailVerificationExpiresAt *time.Time `bson:"email_verification_expires_at,omitempty"`
	ResetPasswordCode          string     `bson:"reset_password_code,omitempty"`
	ResetPasswordCodeExpiresAt *time.Time `bson:"reset_password_code_expires_at,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ContactInfo holds optional public contact details of an artist.
type ContactInfo struct {
	Phone       string       `bson:"phone,omitempty"        json:"phone,omitempty"`
	Website     string       `bson:"website,omitempty"      json:"website,omitempty"`
	SocialMedia *SocialMedia `bson:"social_media,omitempty" json:"social_media,omitempty"`
}

// SocialMedia holds social network handles.
type SocialMedia struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty"  json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty"   json:"twitter,omitempty"`
}
