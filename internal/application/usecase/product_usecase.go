package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
// Update comparte con el libro de movimientos el bloqueo de fila del producto.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	audit    inventory.AuditRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, audit inventory.AuditRecorder) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, audit: audit}
}

// checkCaller rechaza un user_id en el body distinto del usuario autenticado.
func checkCaller(callerID, bodyUserID int64) error {
	if bodyUserID != 0 && bodyUserID != callerID {
		return domain.ErrForbidden
	}
	return nil
}

// Create crea un producto. No se exige unicidad de código.
func (uc *ProductUseCase) Create(ctx context.Context, callerID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := checkCaller(callerID, in.UserID); err != nil {
		return nil, err
	}
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		LocationID:   in.LocationID,
		Stock:        in.Stock,
		StockMinimum: stockMinimum(in.StockMinimum),
		Price:        in.Price,
		Image:        in.Image,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, callerID, entity.AuditActionCreateProduct,
		fmt.Sprintf("Producto %s (%s) con stock %d", product.Name, product.Code, product.Stock))
	return uc.Get(ctx, product.ID)
}

// Update sobrescribe todos los campos editables, incluido el stock, bajo el bloqueo de fila.
// Si in.Version viene y no coincide con la versión actual devuelve ErrConflict sin escribir.
func (uc *ProductUseCase) Update(ctx context.Context, callerID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := checkCaller(callerID, in.UserID); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, validation.Field("id", "gt")
	}
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var before int
	err := uc.txRunner.Run(ctx, func(_ repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Version != nil && *in.Version != product.Version {
			return domain.ErrConflict
		}
		before = product.Stock
		product.Code = in.Code
		product.Name = in.Name
		product.Description = in.Description
		product.CategoryID = in.CategoryID
		product.LocationID = in.LocationID
		product.Stock = in.Stock
		product.StockMinimum = stockMinimum(in.StockMinimum)
		product.Price = in.Price
		product.Image = in.Image
		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Producto %s (%s)", in.Name, in.Code)
	if before != in.Stock {
		desc += fmt.Sprintf(", stock %d -> %d", before, in.Stock)
	}
	uc.audit.Record(ctx, callerID, entity.AuditActionUpdateProduct, desc)
	return uc.Get(ctx, id)
}

// Delete elimina el producto sin verificar referencias; los movimientos quedan sin producto.
func (uc *ProductUseCase) Delete(ctx context.Context, callerID, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, callerID, entity.AuditActionDeleteProduct,
		fmt.Sprintf("Producto %s (%s)", product.Name, product.Code))
	return nil
}

// Get obtiene un producto por ID o ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(product)
	return &out, nil
}

// List lista productos por nombre con los filtros dados.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	products, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		LocationID: in.LocationID,
		LowStock:   in.LowStock,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Items = append(out.Items, toProductResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}

func stockMinimum(v *int) int {
	if v == nil {
		return entity.DefaultStockMinimum
	}
	return *v
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		LocationID:   p.LocationID,
		LocationName: p.LocationName,
		Stock:        p.Stock,
		StockMinimum: p.StockMinimum,
		LowStock:     p.IsLowStock(),
		Price:        p.Price,
		Image:        p.Image,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
