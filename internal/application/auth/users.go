package auth

import (
	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// UserAdminUseCase administración de cuentas: listado, baneo y borrado.
type UserAdminUseCase struct {
	userRepo repository.UserRepository
	notifier *Notifier
}

// NewUserAdminUseCase construye el caso de uso. notifier puede ser nil.
func NewUserAdminUseCase(userRepo repository.UserRepository, notifier *Notifier) *UserAdminUseCase {
	return &UserAdminUseCase{userRepo: userRepo, notifier: notifier}
}

// List lista todas las cuentas.
func (uc *UserAdminUseCase) List() (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Ban suspende la cuenta: el usuario no podrá iniciar sesión hasta ser
// reactivado. Un admin no puede banearse a sí mismo.
func (uc *UserAdminUseCase) Ban(actorID, userID string) (*dto.UserResponse, error) {
	if actorID == userID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateStatus(userID, entity.UserStatusBanned); err != nil {
		return nil, err
	}
	user.Status = entity.UserStatusBanned
	uc.notifier.Publish(Event{Kind: EventBanned, UserID: userID})
	return toUserResponse(user), nil
}

// Unban reactiva una cuenta suspendida.
func (uc *UserAdminUseCase) Unban(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateStatus(userID, entity.UserStatusActive); err != nil {
		return nil, err
	}
	user.Status = entity.UserStatusActive
	uc.notifier.Publish(Event{Kind: EventUnbanned, UserID: userID})
	return toUserResponse(user), nil
}

// Delete borra la cuenta. Un admin no puede borrarse a sí mismo.
func (uc *UserAdminUseCase) Delete(actorID, userID string) error {
	if actorID == userID {
		return domain.ErrForbidden
	}
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return err
	}
	return uc.userRepo.Delete(userID)
}
