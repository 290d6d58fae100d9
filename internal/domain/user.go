package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	CreatedAt    time.Time
}
