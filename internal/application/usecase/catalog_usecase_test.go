package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el listado se ordena por nombre y los nombres se guardan sin espacios.
func TestCategory_CrearYListarPorNombre(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	for _, name := range []string{"Redes", "  Cables ", "Herramientas"} {
		_, err := uc.Create(ctx, dto.CatalogEntryRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Cables", list[0].Name)
	assert.Equal(t, "Herramientas", list[1].Name)
	assert.Equal(t, "Redes", list[2].Name)
	assert.False(t, list[0].CreatedAt.IsZero())
}

// Caso 2: nombre vacío → entrada inválida; nombre repetido → duplicado.
func TestCategory_ValidacionYDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CatalogEntryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	first, err := uc.Create(ctx, dto.CatalogEntryRequest{Name: "Cables"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CatalogEntryRequest{Name: "Cables"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other, err := uc.Create(ctx, dto.CatalogEntryRequest{Name: "Redes"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, other.ID, dto.CatalogEntryRequest{Name: "Cables"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Renombrar con el mismo nombre no es un duplicado.
	updated, err := uc.Update(ctx, first.ID, dto.CatalogEntryRequest{Name: "Cables", Description: "UTP y coaxial"})
	require.NoError(t, err)
	assert.Equal(t, "UTP y coaxial", updated.Description)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
}

// Caso 3: editar o eliminar un ID inexistente → NotFound.
func TestCategory_InexistenteNotFound(t *testing.T) {
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Update(ctx, 999, dto.CatalogEntryRequest{Name: "Nada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 999), domain.ErrNotFound)
}

// Caso 4: eliminar una categoría deja sus productos sin categoría.
func TestCategory_EliminarDejaProductosSinCategoria(t *testing.T) {
	products, _, store := newProductUseCase(t)
	categories := usecase.NewCategoryUseCase(memory.NewCategoryRepository(store))
	ctx := context.Background()

	cat, err := categories.Create(ctx, dto.CatalogEntryRequest{Name: "Herramientas"})
	require.NoError(t, err)
	in := createReq(3)
	in.CategoryID = &cat.ID
	p, err := products.Create(ctx, callerID, in)
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, "Herramientas", p.CategoryName)

	require.NoError(t, categories.Delete(ctx, cat.ID))

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Empty(t, got.CategoryName)
	assert.Equal(t, 3, got.Stock)
}

// Caso 5: un producto no puede referenciar una categoría inexistente.
func TestProductCreate_CategoriaInexistente(t *testing.T) {
	products, _, _ := newProductUseCase(t)
	missing := int64(404)
	in := createReq(1)
	in.CategoryID = &missing

	_, err := products.Create(context.Background(), callerID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocation_CRUD(t *testing.T) {
	products, _, store := newProductUseCase(t)
	uc := usecase.NewLocationUseCase(memory.NewLocationRepository(store))
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.CatalogEntryRequest{Name: "Bodega"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CatalogEntryRequest{Name: "Anaquel 1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CatalogEntryRequest{Name: "Bodega"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Anaquel 1", list[0].Name)

	_, err = uc.Update(ctx, 999, dto.CatalogEntryRequest{Name: "Vitrina"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	renamed, err := uc.Update(ctx, b.ID, dto.CatalogEntryRequest{Name: "Bodega central"})
	require.NoError(t, err)
	assert.Equal(t, "Bodega central", renamed.Name)

	in := createReq(2)
	in.LocationID = &b.ID
	p, err := products.Create(ctx, callerID, in)
	require.NoError(t, err)
	assert.Equal(t, "Bodega central", p.LocationName)

	require.NoError(t, uc.Delete(ctx, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, b.ID), domain.ErrNotFound)
	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LocationID)
}
