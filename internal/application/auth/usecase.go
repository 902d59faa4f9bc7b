package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
	"github.com/jhoicas/Holding-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Session identidad resuelta a partir de un token.
type Session struct {
	UserID string
	Email  string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión y cambio de contraseña.
type AuthUseCase struct {
	users   repository.UserRepository
	members repository.UserFirmRepository
	tx      repository.TxRunner
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, members repository.UserFirmRepository, tx repository.TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, members: members, tx: tx, jwtCfg: jwtCfg}
}

// Register crea un usuario sin firmas. Email repetido → domain.ErrConflict.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	v := domain.NewValidationError()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		v.Add("email", "email inválido")
	}
	if len(in.Password) < MinPasswordLength {
		v.Add("password", fmt.Sprintf("mínimo %d caracteres", MinPasswordLength))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("el email ya está registrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y genera el JWT. Email desconocido y contraseña errónea
// devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// ResolveSession valida el token y comprueba que el usuario siga existiendo.
// Token inválido o usuario borrado → ErrUnauthenticated.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (*Session, error) {
	userID, email, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.Deny(domain.ReasonUnauthenticated, "token inválido o expirado")
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: resolver sesión: %w", err)
	}
	if user == nil {
		return nil, domain.Deny(domain.ReasonUnauthenticated, "usuario inexistente")
	}
	if email == "" {
		email = user.Email
	}
	return &Session{UserID: user.ID, Email: email}, nil
}

// Me devuelve el usuario y sus firmas con el rol en cada una.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: leer usuario: %w", err)
	}
	if user == nil {
		return nil, domain.Deny(domain.ReasonUnauthenticated, "usuario inexistente")
	}
	list, err := uc.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: membresías: %w", err)
	}
	out := &dto.MeResponse{User: *toUserResponse(user), Memberships: make([]dto.MembershipResponse, 0, len(list))}
	for _, m := range list {
		out.Memberships = append(out.Memberships, dto.MembershipResponse{
			Firm: dto.FirmResponse{
				ID: m.Firm.ID, Slug: m.Firm.Slug, Name: m.Firm.Name, Logo: m.Firm.Logo,
				ThemeColor: m.Firm.ThemeColor, HoldingID: m.Firm.HoldingID,
				CreatedAt: m.Firm.CreatedAt, UpdatedAt: m.Firm.UpdatedAt,
			},
			Role: string(m.Role),
		})
	}
	return out, nil
}

// ChangePassword exige la contraseña actual. El cambio y su auditoría (sin firma) van en una transacción.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return domain.Invalid("newPassword", fmt.Sprintf("mínimo %d caracteres", MinPasswordLength))
	}
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("auth: leer usuario: %w", err)
		}
		if user == nil {
			return domain.Deny(domain.ReasonUnauthenticated, "usuario inexistente")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return domain.Invalid("currentPassword", "contraseña actual incorrecta")
			}
			return fmt.Errorf("auth: comparar hash: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("auth: hash: %w", err)
		}
		now := time.Now()
		if err := repos.Users.UpdatePassword(ctx, user.ID, string(hash), now); err != nil {
			return fmt.Errorf("auth: actualizar contraseña: %w", err)
		}
		return repos.Audit.Create(ctx, &entity.AuditLog{
			ID:        uuid.New().String(),
			ActorID:   user.ID,
			Action:    entity.AuditPasswordChange,
			Entity:    "user",
			EntityID:  user.ID,
			CreatedAt: now,
		})
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
