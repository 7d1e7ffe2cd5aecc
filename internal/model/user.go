package model

import "golang.org/x/crypto/bcrypt"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleSeller UserRole = "seller"
)

// DefaultAdminID marks the built-in administrator, which can never be deleted.
const DefaultAdminID = "admin-default"

// User is an operator account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID       string   `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username string   `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"`
	Name     string   `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Role     UserRole `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=admin seller"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without the password hash)
type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}
