package domain

import (
	"time"
)

// User represents a registered account. Email is the login identity;
// username is the public handle shown on recipes.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed
	FirstName string    `json:"first_name" gorm:"size:150;not null"`
	LastName  string    `json:"last_name" gorm:"size:150;not null"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByIDs(ids []uint) ([]User, error)
	FindByEmail(email string) (*User, error)
	FindByUsername(username string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	Update(user *User) error
}
