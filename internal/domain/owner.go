package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Users struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         *string   `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Image        *string   `db:"image" json:"image"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	AuthProvider string    `db:"auth_provider" json:"authProvider"`
	GoogleID     *string   `db:"google_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func (u *Users) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type UsersTable struct {
	ID           string
	Name         string
	Email        string
	Image        string
	Role         string
	PasswordHash string
	AuthProvider string
	GoogleID     string
	CreatedAt    string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		Name:         "name",
		Email:        "email",
		Image:        "image",
		Role:         "role",
		PasswordHash: "password_hash",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
		CreatedAt:    "created_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

func (t UsersTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Image, t.Role, t.PasswordHash, t.AuthProvider, t.GoogleID, t.CreatedAt}
}
