package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
	"github.com/paisasoft/mercado-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	notifier *Notifier
}

// NewAuthUseCase construye el caso de uso de auth. notifier puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, notifier *Notifier) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, notifier: notifier}
}

// Register crea un cliente nuevo: hashea el password con bcrypt y
// persiste. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if existing, _ := uc.userRepo.FindByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.notifier.Publish(Event{Kind: EventRegistered, UserID: user.ID})
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
//
// Retorna:
//   - domain.ErrUnauthorized      si el email no existe o el password no
//     coincide (misma respuesta en ambos casos).
//   - domain.ErrAccountSuspended  si la cuenta está baneada.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status == entity.UserStatusBanned {
		return nil, domain.ErrAccountSuspended
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(Event{Kind: EventLoggedIn, UserID: user.ID})
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}
