package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CatalogEntryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	category := &entity.Category{Name: in.Name, Description: in.Description}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// Update reemplaza nombre y descripción. ErrNotFound si no existe.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CatalogEntryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	category := &entity.Category{ID: id, Name: in.Name, Description: in.Description}
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// List lista las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina la categoría; los productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CatalogEntryRequest) (*dto.LocationResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	location := &entity.Location{Name: in.Name, Description: in.Description}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	out := toLocationResponse(location)
	return &out, nil
}

// Update reemplaza nombre y descripción. ErrNotFound si no existe.
func (uc *LocationUseCase) Update(ctx context.Context, id int64, in dto.CatalogEntryRequest) (*dto.LocationResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	location := &entity.Location{ID: id, Name: in.Name, Description: in.Description}
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	out := toLocationResponse(location)
	return &out, nil
}

// List lista las ubicaciones por nombre.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

// Delete elimina la ubicación; los productos quedan sin ubicación.
func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Name: l.Name, Description: l.Description, CreatedAt: l.CreatedAt}
}
