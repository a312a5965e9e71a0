package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the account document kept in MongoDB.
type UserProfile struct {
	UserID    string    `json:"user_id" bson:"_id"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Street    string    `json:"street" bson:"street"`
	City      string    `json:"city" bson:"city"`
	ZipCode   string    `json:"zip_code" bson:"zip_code"`
	Points    int       `json:"points" bson:"points"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// UpdateProfileRequest is the payload for PUT /profile.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}

// Account holds login credentials in Postgres.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// RevokedToken records logged-out token ids until they expire.
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// UserHandle identifies the signed-in user to the app.
type UserHandle struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// SignupRequest is the payload for POST /auth/signup and POST /validate/signup.
type SignupRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload for POST /auth/login and POST /validate/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
