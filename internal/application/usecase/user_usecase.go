package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios (sin hash).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Create hashea el password con bcrypt y persiste. ErrEmailAlreadyExists si el email ya existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// ChangePassword cambia el password de id. Solo el propio usuario o un admin.
func (uc *UserUseCase) ChangePassword(ctx context.Context, callerID int64, callerRole string, id int64, in dto.ChangePasswordRequest) error {
	if callerID != id && callerRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, string(hash))
}

// Delete elimina un usuario. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}
