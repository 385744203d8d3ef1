package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/audit"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/memory"
)

const callerID = int64(7)

func newProductUseCase(t *testing.T) (*usecase.ProductUseCase, *inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	recorder := audit.NewRecorder(memory.NewAuditRepository(store), nil)
	tx := memory.NewTxRunner(store)
	products := usecase.NewProductUseCase(tx, memory.NewProductRepository(store), recorder)
	ledger := inventory.NewLedgerUseCase(tx, memory.NewMovementRepository(store), recorder, nil, inventory.LedgerConfig{})
	return products, ledger, store
}

func createReq(stock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{Code: "T-10", Name: "Taladro", Stock: stock, Price: decimal.RequireFromString("150000")}
}

func updateReq(stock int, version *int) dto.UpdateProductRequest {
	return dto.UpdateProductRequest{Code: "T-10", Name: "Taladro percutor", Stock: stock, Price: decimal.RequireFromString("150000"), Version: version}
}

func TestProductCreate_DefaultsYBitacora(t *testing.T) {
	uc, _, store := newProductUseCase(t)

	out, err := uc.Create(context.Background(), callerID, createReq(0))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultStockMinimum, out.StockMinimum)
	assert.True(t, out.LowStock)
	assert.Equal(t, 1, out.Version)

	entries, err := memory.NewAuditRepository(store).List(context.Background(), repository.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionCreateProduct, entries[0].Action)
}

func TestProductCreate_Validacion(t *testing.T) {
	uc, _, _ := newProductUseCase(t)

	in := createReq(-1)
	in.Name = "  "
	in.Price = decimal.NewFromInt(-5)
	_, err := uc.Create(context.Background(), callerID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_UsuarioDelBodyDistinto(t *testing.T) {
	uc, _, _ := newProductUseCase(t)

	in := createReq(1)
	in.UserID = callerID + 1
	_, err := uc.Create(context.Background(), callerID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// La edición sobrescribe el stock completo (incluye el efecto de movimientos previos).
func TestProductUpdate_SobrescribeStock(t *testing.T) {
	uc, ledger, _ := newProductUseCase(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, callerID, createReq(5))
	require.NoError(t, err)

	_, err = ledger.RecordMovement(ctx, inventory.RecordMovementInput{ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 3})
	require.NoError(t, err)

	out, err := uc.Update(ctx, callerID, p.ID, updateReq(20, nil))
	require.NoError(t, err)
	assert.Equal(t, 20, out.Stock)
	assert.Equal(t, "Taladro percutor", out.Name)
}

// Con version desactualizada la edición se rechaza y la fila no cambia.
func TestProductUpdate_VersionDesactualizada(t *testing.T) {
	uc, ledger, _ := newProductUseCase(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, callerID, createReq(5))
	require.NoError(t, err)
	staleVersion := p.Version

	_, err = ledger.RecordMovement(ctx, inventory.RecordMovementInput{ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 3})
	require.NoError(t, err)

	_, err = uc.Update(ctx, callerID, p.ID, updateReq(5, &staleVersion))
	assert.ErrorIs(t, err, domain.ErrConflict)

	cur, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, cur.Stock)
	assert.Equal(t, "Taladro", cur.Name)

	current := cur.Version
	out, err := uc.Update(ctx, callerID, p.ID, updateReq(9, &current))
	require.NoError(t, err)
	assert.Equal(t, 9, out.Stock)
	assert.Equal(t, current+1, out.Version)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newProductUseCase(t)

	_, err := uc.Update(context.Background(), callerID, 404, updateReq(1, nil))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Eliminar el producto conserva sus movimientos sin referencia.
func TestProductDelete_ConservaMovimientos(t *testing.T) {
	uc, ledger, _ := newProductUseCase(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, callerID, createReq(0))
	require.NoError(t, err)
	mov, err := ledger.RecordMovement(ctx, inventory.RecordMovementInput{ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, callerID, p.ID))
	_, err = uc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, callerID, p.ID), domain.ErrNotFound)

	got, err := ledger.GetMovement(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.ProductID)
}

func TestProductList_BajoStock(t *testing.T) {
	uc, _, _ := newProductUseCase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, callerID, createReq(0))
	require.NoError(t, err)
	full := createReq(50)
	full.Name = "Martillo"
	_, err = uc.Create(ctx, callerID, full)
	require.NoError(t, err)

	out, err := uc.List(ctx, dto.ProductFilterRequest{LowStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Taladro", out.Items[0].Name)

	out, err = uc.List(ctx, dto.ProductFilterRequest{Search: "mart"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Martillo", out.Items[0].Name)
}
