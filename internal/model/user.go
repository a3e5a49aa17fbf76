// internal/model/user.go
package model

import "time"

type User struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Email        string     `db:"email" json:"email"`
	Role         Role       `db:"role" json:"role"`
	Status       UserStatus `db:"status" json:"status"`
	JoinDate     time.Time  `db:"join_date" json:"join_date"`
	Age          *int       `db:"age" json:"age,omitempty"`
	Address      string     `db:"address" json:"address,omitempty"`
	Phone        string     `db:"phone" json:"phone,omitempty"`
	NationalID   string     `db:"national_id" json:"national_id,omitempty"`

	// Admin profile fields
	Department string `db:"department" json:"department,omitempty"`
	Position   string `db:"position" json:"position,omitempty"`
	Bio        string `db:"bio" json:"bio,omitempty"`
}
