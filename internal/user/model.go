package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	IsAdmin      bool
	CreatedAt    time.Time
}
