package repository

import "github.com/paisasoft/mercado-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdateStatus(id, status string) error
	List() ([]*entity.User, error)
	Delete(id string) error
}
