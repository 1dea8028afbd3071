package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_ADMIN  = "admin"
	ROLE_AUTHOR = "author"
	ROLE_READER = "reader"

	STATUS_ACTIVE    = "active"
	STATUS_SUSPENDED = "suspended"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"type:varchar(150);column:fullname" json:"fullname" validate:"required,min=3,max=150"`
	// the migration gives this column a binary collation so the unique
	// index treats addresses case-sensitively
	Email      string    `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password   string    `gorm:"type:text" json:"-" validate:"required,min=6"`
	IsAdmin    bool      `gorm:"type:tinyint(1);default:0" json:"is_admin"`
	IsAuthor   bool      `gorm:"type:tinyint(1);default:0" json:"is_author"`
	IsActive   bool      `gorm:"type:tinyint(1);default:1" json:"is_active"`
	DateJoined time.Time `gorm:"autoCreateTime;column:date_joined" json:"date_joined"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func CreateUser(fullname string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		FullName: fullname,
		Email:    email,
		Password: pw,
		IsActive: true,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// Role derives the user tier from the stored flags. The flags are not
// mutually exclusive in storage; admin wins over author, and a user with
// neither flag is a reader.
func (u *User) Role() string {
	switch {
	case u.IsAdmin:
		return ROLE_ADMIN
	case u.IsAuthor:
		return ROLE_AUTHOR
	default:
		return ROLE_READER
	}
}

// Status maps the active flag to the wire-level status string.
func (u *User) Status() string {
	if u.IsActive {
		return STATUS_ACTIVE
	}
	return STATUS_SUSPENDED
}

// ApplyRole sets the role flags for an admin-driven role change. Unlike the
// derived Role(), assignment is exclusive: promoting to one tier clears the
// other flag.
func (u *User) ApplyRole(role string) {
	switch role {
	case ROLE_ADMIN:
		u.IsAdmin = true
		u.IsAuthor = false
	case ROLE_AUTHOR:
		u.IsAdmin = false
		u.IsAuthor = true
	case ROLE_READER:
		u.IsAdmin = false
		u.IsAuthor = false
	}
}
