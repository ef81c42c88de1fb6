package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
	"github.com/jhoicas/Lecheria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login por número de cuenta.
type AuthUseCase struct {
	memberRepo repository.MemberRepository
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(memberRepo repository.MemberRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{memberRepo: memberRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Signup registra un socio: hashea password con bcrypt y persiste.
// Devuelve domain.ErrDuplicate si la cuenta o el email ya existen.
// El rol siempre es member; se eleva con SetRole o EnsureAdmin.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.MemberResponse, error) {
	return uc.register(ctx, in, entity.RoleMember)
}

func (uc *AuthUseCase) register(ctx context.Context, in dto.SignupRequest, role string) (*dto.MemberResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.AccountNo = strings.TrimSpace(in.AccountNo)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	exists, err := uc.memberRepo.ExistsByAccountOrEmail(ctx, in.AccountNo, in.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: verificar duplicados: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}
	now := uc.now()
	member := &entity.Member{
		ID:           uuid.New().String(),
		Name:         in.Name,
		AccountNo:    in.AccountNo,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: crear socio: %w", err)
	}
	return toMemberResponse(member), nil
}

// SetRole cambia el rol de una cuenta existente (p. ej. member -> collector).
// domain.ErrInvalidInput si el rol no existe; domain.ErrMemberNotFound si la cuenta no existe.
func (uc *AuthUseCase) SetRole(ctx context.Context, accountNo, role string) (*dto.MemberResponse, error) {
	accountNo = strings.TrimSpace(accountNo)
	role = strings.ToLower(strings.TrimSpace(role))
	if accountNo == "" {
		return nil, fmt.Errorf("%w: account_no es requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	if err := uc.memberRepo.UpdateRole(ctx, accountNo, role, uc.now()); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set role: %w", err)
	}
	member, err := uc.memberRepo.GetByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("set role: releer socio: %w", err)
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}
	return toMemberResponse(member), nil
}

// EnsureAdmin garantiza que la cuenta exista con rol admin. Si no existe la crea con
// el password dado; si existe solo eleva el rol y conserva su password.
// Devuelve created=true cuando la cuenta se creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, in dto.SignupRequest) (member *dto.MemberResponse, created bool, err error) {
	in.AccountNo = strings.TrimSpace(in.AccountNo)
	existing, err := uc.memberRepo.GetByAccountNo(ctx, in.AccountNo)
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin: buscar socio: %w", err)
	}
	if existing != nil {
		if existing.Role == entity.RoleAdmin {
			return toMemberResponse(existing), false, nil
		}
		member, err = uc.SetRole(ctx, in.AccountNo, entity.RoleAdmin)
		return member, false, err
	}
	member, err = uc.register(ctx, in, entity.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return member, true, nil
}

// Login verifica cuenta/password, genera JWT y retorna token + socio.
// Cuenta inexistente y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.AccountNo = strings.TrimSpace(in.AccountNo)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	member, err := uc.memberRepo.GetByAccountNo(ctx, in.AccountNo)
	if err != nil {
		return nil, fmt.Errorf("login: buscar socio: %w", err)
	}
	if member == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, member.ID, member.AccountNo, member.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: generar token: %w", err)
	}
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    *toMemberResponse(member),
	}, nil
}

func toMemberResponse(m *entity.Member) *dto.MemberResponse {
	if m == nil {
		return nil
	}
	return &dto.MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		AccountNo: m.AccountNo,
		Email:     m.Email,
		Role:      m.Role,
	}
}
