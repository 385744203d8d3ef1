package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/audit"
	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/export"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/idempotency"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	users *usecase.UserUseCase
}

// newAPI arma el router completo sobre adaptadores en memoria y Redis de miniredis.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	productRepo := memory.NewProductRepository(store)
	userRepo := memory.NewUserRepository(store)
	auditRepo := memory.NewAuditRepository(store)
	recorder := audit.NewRecorder(auditRepo, nil)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	uploader, err := storage.NewLocalUploader(t.TempDir(), 1<<20)
	require.NoError(t, err)

	users := usecase.NewUserUseCase(userRepo)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "test",
		LedgerUC:  inventory.NewLedgerUseCase(txRunner, memory.NewMovementRepository(store), recorder, nil, inventory.LedgerConfig{}),
		Renderers: map[string]inventory.MovementRenderer{inventory.ExportFormatCSV: export.NewMovementsCSV()},
		ProductUC: usecase.NewProductUseCase(txRunner, productRepo, recorder),
		Category:  usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		Location:  usecase.NewLocationUseCase(memory.NewLocationRepository(store)),
		UserUC:    users,
		AuditUC:   audit.NewUseCase(auditRepo),
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		Uploader:       uploader,
		Idempotency:    idempotency.NewStore(client, time.Hour),
		LoginRateLimit: 3,
		JWTSecret:      testJWTSecret,
	})
	return &apiFixture{app: app, store: store, users: users}
}

func (f *apiFixture) product(t *testing.T, stock int) int64 {
	t.Helper()
	p := &entity.Product{Code: "C-1", Name: "Cable UTP", Stock: stock, StockMinimum: 2, Price: decimal.NewFromInt(1500)}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), p))
	return p.ID
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) stock(t *testing.T, token string, id int64) int {
	t.Helper()
	resp := f.do(t, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp).Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: salida de 3 sobre stock 10 → 200 y stock 7.
func TestRecordMovement_SalidaAjustaStock(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 10)

	resp := api.do(t, http.MethodPost, "/api/movements", tok,
		dto.RecordMovementRequest{ProductID: id, Type: "salida", Quantity: 3, Description: "venta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, testUserID, mov.UserID)
	assert.Equal(t, "salida", mov.Type)

	assert.Equal(t, 7, api.stock(t, tok, id))
}

// Caso 2: errores de dominio mapeados a su status.
func TestRecordMovement_MapeoDeErrores(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 2)

	cases := []struct {
		name   string
		body   dto.RecordMovementRequest
		status int
		code   string
	}{
		{"stock insuficiente", dto.RecordMovementRequest{ProductID: id, Type: "salida", Quantity: 5}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"tipo inválido", dto.RecordMovementRequest{ProductID: id, Type: "ajuste", Quantity: 1}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", dto.RecordMovementRequest{ProductID: id, Type: "entrada"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad fuera de rango", dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: math.MaxInt32 + 1}, http.StatusBadRequest, "VALIDATION"},
		{"stock resultante fuera de rango", dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: math.MaxInt32}, http.StatusBadRequest, "VALIDATION"},
		{"producto inexistente", dto.RecordMovementRequest{ProductID: 9999, Type: "entrada", Quantity: 1}, http.StatusNotFound, "NOT_FOUND"},
		{"otro usuario en el body", dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: 1, UserID: testUserID + 1}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.do(t, http.MethodPost, "/api/movements", tok, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
	assert.Equal(t, 2, api.stock(t, tok, id), "ningún intento fallido modifica el stock")
}

func TestRecordMovement_ErrorDeValidacionIncluyeCampos(t *testing.T) {
	api := newAPI(t)
	resp := api.do(t, http.MethodPost, "/api/movements", tokenForRole(t, "operador"),
		dto.RecordMovementRequest{ProductID: api.product(t, 1), Type: "otro", Quantity: 1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Fields, "type")
}

func TestRecordMovement_CuerpoInvalido(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "operador"))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRecordMovement_SinToken(t *testing.T) {
	api := newAPI(t)
	resp := api.do(t, http.MethodPost, "/api/movements", "", dto.RecordMovementRequest{ProductID: 1, Type: "entrada", Quantity: 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: la misma Idempotency-Key repite la respuesta sin volver a mover stock.
func TestRecordMovement_IdempotencyKeyRepiteRespuesta(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 0)
	body := dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: 4}

	first := api.do(t, http.MethodPost, "/api/movements", tok, body, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Empty(t, first.Header.Get(apphttp.HeaderReplayed))
	firstMov := decode[dto.MovementResponse](t, first)

	second := api.do(t, http.MethodPost, "/api/movements", tok, body, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get(apphttp.HeaderReplayed))
	assert.Equal(t, firstMov.ID, decode[dto.MovementResponse](t, second).ID)

	assert.Equal(t, 4, api.stock(t, tok, id))

	// Otra llave sí registra un nuevo movimiento.
	third := api.do(t, http.MethodPost, "/api/movements", tok, body, apphttp.HeaderIdempotencyKey, "k-2")
	require.Equal(t, http.StatusOK, third.StatusCode)
	assert.Equal(t, 8, api.stock(t, tok, id))
}

// Caso 4: una respuesta de error libera la llave y permite el reintento.
func TestRecordMovement_IdempotencyKeyLiberadaTrasError(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 1)

	resp := api.do(t, http.MethodPost, "/api/movements", tok,
		dto.RecordMovementRequest{ProductID: id, Type: "salida", Quantity: 2}, apphttp.HeaderIdempotencyKey, "k-err")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/movements", tok,
		dto.RecordMovementRequest{ProductID: id, Type: "salida", Quantity: 1}, apphttp.HeaderIdempotencyKey, "k-err")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(apphttp.HeaderReplayed))
	assert.Equal(t, 0, api.stock(t, tok, id))
}

func TestListMovements_FiltrosYFechaInvalida(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	a := api.product(t, 10)

	for _, typ := range []string{"entrada", "salida", "entrada"} {
		resp := api.do(t, http.MethodPost, "/api/movements", tok, dto.RecordMovementRequest{ProductID: a, Type: typ, Quantity: 1})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := api.do(t, http.MethodGet, "/api/movements?type=entrada", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	assert.Equal(t, 2, list.Total)
	for _, m := range list.Items {
		assert.Equal(t, "entrada", m.Type)
	}

	resp = api.do(t, http.MethodGet, "/api/movements", tok, nil)
	list = decode[dto.MovementListResponse](t, resp)
	require.Len(t, list.Items, 3)
	assert.True(t, list.Items[0].ID > list.Items[2].ID, "el más reciente va primero")

	resp = api.do(t, http.MethodGet, "/api/movements?date_from=17-10-2026", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "date_from")
}

func TestExportMovements_CSV(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 5)
	resp := api.do(t, http.MethodPost, "/api/movements", tok, dto.RecordMovementRequest{ProductID: id, Type: "salida", Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/movements/export?format=csv", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Cable UTP")

	resp = api.do(t, http.MethodGet, "/api/movements/export?format=xlsx", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteMovement_NoRevierteStock(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 0)
	resp := api.do(t, http.MethodPost, "/api/movements", tok, dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: 6})
	mov := decode[dto.MovementResponse](t, resp)

	resp = api.do(t, http.MethodDelete, "/api/movements/"+strconv.FormatInt(mov.ID, 10), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, api.stock(t, tok, id))

	resp = api.do(t, http.MethodGet, "/api/movements/"+strconv.FormatInt(mov.ID, 10), tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/movements/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos, usuarios y auth
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrearYVersionDesactualizada(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")

	resp := api.do(t, http.MethodPost, "/api/products", tok, dto.CreateProductRequest{Code: "P-1", Name: "Mouse", Stock: 3, Price: decimal.RequireFromString("25.50")})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 3, created.Stock)

	stale := created.Version + 1
	resp = api.do(t, http.MethodPut, "/api/products/"+strconv.FormatInt(created.ID, 10), tok, dto.UpdateProductRequest{
		Code: "P-1", Name: "Mouse inalámbrico", Stock: 3, Price: created.Price, Version: &stale,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = api.do(t, http.MethodPost, "/api/products", tok, dto.CreateProductRequest{Name: "Sin código"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/products", tok, dto.CreateProductRequest{Code: "P-2", Name: "Excesivo", Stock: math.MaxInt32 + 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo: categorías y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CRUDYErrores(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")

	resp := api.do(t, http.MethodPost, "/api/categories", tok, dto.CatalogEntryRequest{Name: "Redes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	redes := decode[dto.CategoryResponse](t, resp)
	resp = api.do(t, http.MethodPost, "/api/categories", tok, dto.CatalogEntryRequest{Name: "Cables"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/categories", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.CategoryResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Cables", list[0].Name)

	resp = api.do(t, http.MethodPost, "/api/categories", tok, dto.CatalogEntryRequest{Name: "Redes"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = api.do(t, http.MethodPut, "/api/categories/999", tok, dto.CatalogEntryRequest{Name: "Nada"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = api.do(t, http.MethodPost, "/api/categories", tok, dto.CatalogEntryRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Un producto de la categoría queda sin categoría al eliminarla.
	resp = api.do(t, http.MethodPost, "/api/products", tok, dto.CreateProductRequest{Code: "R-1", Name: "Switch", Stock: 4, CategoryID: &redes.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Redes", product.CategoryName)

	resp = api.do(t, http.MethodDelete, "/api/categories/"+strconv.FormatInt(redes.ID, 10), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = api.do(t, http.MethodGet, "/api/products/"+strconv.FormatInt(product.ID, 10), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.ProductResponse](t, resp).CategoryID)

	resp = api.do(t, http.MethodDelete, "/api/categories/"+strconv.FormatInt(redes.ID, 10), tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLocations_CRUD(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")

	resp := api.do(t, http.MethodPost, "/api/locations", tok, dto.CatalogEntryRequest{Name: "Bodega"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bodega := decode[dto.LocationResponse](t, resp)

	resp = api.do(t, http.MethodPut, "/api/locations/"+strconv.FormatInt(bodega.ID, 10), tok, dto.CatalogEntryRequest{Name: "Bodega central"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bodega central", decode[dto.LocationResponse](t, resp).Name)

	resp = api.do(t, http.MethodPost, "/api/locations", tok, dto.CatalogEntryRequest{Name: "Bodega central"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/locations/"+strconv.FormatInt(bodega.ID, 10), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = api.do(t, http.MethodGet, "/api/locations", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.LocationResponse](t, resp))
}

func TestUsers_SoloAdmin(t *testing.T) {
	api := newAPI(t)

	resp := api.do(t, http.MethodGet, "/api/users", tokenForRole(t, "operador"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/users", tokenForRole(t, "admin"),
		dto.CreateUserRequest{Name: "Luis", Email: "luis@example.com", Password: "clave-segura"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/users", tokenForRole(t, "admin"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 1)
}

func TestLogin_CredencialesYLimite(t *testing.T) {
	api := newAPI(t)
	_, err := api.users.Create(context.Background(), dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "clave-segura", Role: "admin"})
	require.NoError(t, err)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	resp = api.do(t, http.MethodGet, "/api/users", "Bearer "+out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// El límite de la prueba es 3 intentos por minuto.
	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAudit_RegistraAccionesDelUsuario(t *testing.T) {
	api := newAPI(t)
	tok := tokenForRole(t, "operador")
	id := api.product(t, 3)
	resp := api.do(t, http.MethodPost, "/api/movements", tok, dto.RecordMovementRequest{ProductID: id, Type: "entrada", Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/audit?user_id="+strconv.FormatInt(testUserID, 10), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.AuditListResponse](t, resp)
	require.NotEmpty(t, list.Items)
	assert.Equal(t, testUserID, list.Items[0].UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subida de imágenes
// ──────────────────────────────────────────────────────────────────────────────

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("imagen", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "operador"))
	return req
}

func TestUpload_ImagenYContenidoInvalido(t *testing.T) {
	api := newAPI(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	resp, err := api.app.Test(uploadRequest(t, "Mi Foto.png", png), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.UploadResponse](t, resp)
	assert.True(t, strings.HasPrefix(out.URL, storage.PublicPrefix+"/"))
	assert.True(t, strings.HasSuffix(out.Filename, "-mi-foto.png"))

	resp, err = api.app.Test(uploadRequest(t, "falso.png", []byte("no soy una imagen")), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	resp := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}
