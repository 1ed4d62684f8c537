package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	Email        kernel.Email  `db:"email" json:"email"`
	FirstName    string        `db:"first_name" json:"first_name"`
	LastName     string        `db:"last_name" json:"last_name"`
	PasswordHash string        `db:"password_hash" json:"-"`
	IsStaff      bool          `db:"is_staff" json:"is_staff"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	DateJoined   time.Time     `db:"date_joined" json:"date_joined"`
}

// DisplayName returns "first last", falling back to the username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID          kernel.UserID `json:"id"`
	Username    string        `json:"username"`
	Email       kernel.Email  `json:"email"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	DisplayName string        `json:"display_name"`
	IsStaff     bool          `json:"is_staff"`
	DateJoined  time.Time     `json:"date_joined"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		IsStaff:     u.IsStaff,
		DateJoined:  u.DateJoined,
	}
}

// UserSummary is embedded in job and application responses
type UserSummary struct {
	ID       kernel.UserID `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
}
