package entity

import "time"

// Roles y estados de cuenta.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

// User cuenta de la tienda (cliente o administrador).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string // admin | customer
	Status       string // active | banned
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
