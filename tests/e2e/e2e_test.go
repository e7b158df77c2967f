//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"credipos/internal/config"
	"credipos/internal/infra"
	"credipos/internal/router"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	// adminToken es de un superusuario sin sucursal; comercialToken queda
	// atado a la sucursal creada en el setup.
	adminToken     string
	comercialToken string
	sucursalID     string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("credipos_test"),
		tcPostgres.WithUsername("credipos"),
		tcPostgres.WithPassword("credipos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed: un superusuario y un comercial (la sucursal se crea por API y
	// queda atada al comercial como responsable).
	hash, err := bcrypt.GenerateFromPassword([]byte("credipos-e2e"), bcrypt.MinCost)
	require.NoError(t, err)
	comercialID := uuid.New()
	require.NoError(t, db.Exec(`
		INSERT INTO usuarios (id, documento, nombre, apellido, password_hash, rol, activo)
		VALUES (gen_random_uuid(), '10000001', 'Super', 'E2E', ?, 'superusuario', true),
		       (?, '10000002', 'Carlos', 'Comercial', ?, 'comercial', true)
	`, string(hash), comercialID, string(hash)).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	adminToken := login(t, srv, "10000001")

	// Crear la sucursal con el comercial como responsable
	sucResp := do(t, srv, "POST", "/api/sucursales",
		jsonBody(t, map[string]any{
			"nombre":         "Sucursal Centro",
			"direccion":      "Calle 10 # 5-51",
			"responsable_id": comercialID.String(),
		}), adminToken)
	require.Equal(t, http.StatusCreated, sucResp.StatusCode)
	var sucursal struct {
		ID string `json:"id"`
	}
	decodeJSON(t, sucResp, &sucursal)

	// El token del comercial se emite después, ya con sucursal asignada
	comercialToken := login(t, srv, "10000002")

	return &testEnv{
		server:         srv,
		adminToken:     adminToken,
		comercialToken: comercialToken,
		sucursalID:     sucursal.ID,
	}
}

func login(t *testing.T, srv *httptest.Server, documento string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"documento": documento, "password": "credipos-e2e"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

// validarHastaAprobar reintenta la validación de identidad hasta obtener el
// código (el validador aprueba el 80% de los intentos).
func validarHastaAprobar(t *testing.T, env *testEnv, documento string) string {
	t.Helper()
	for i := 0; i < 100; i++ {
		resp := do(t, env.server, "POST", "/api/creditos/validar-cliente",
			jsonBody(t, map[string]string{
				"documento": documento, "nombre": "Maria", "apellido": "Gomez",
			}), env.comercialToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Aprobado           bool   `json:"aprobado"`
			CodigoVerificacion string `json:"codigo_verificacion"`
		}
		decodeJSON(t, resp, &body)
		if body.Aprobado {
			return body.CodigoVerificacion
		}
	}
	t.Fatal("validación nunca aprobada en 100 intentos")
	return ""
}

func saldoSucursal(t *testing.T, env *testEnv) string {
	t.Helper()
	resp := do(t, env.server, "GET", "/api/sucursales/"+env.sucursalID, nil, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		SaldoDisponible string `json:"saldo_disponible"`
	}
	decodeJSON(t, resp, &body)
	return body.SaldoDisponible
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ciclo completo: validación → crédito → abono → liquidación.
func TestE2E_CicloCredito(t *testing.T) {
	env := setupTestEnv(t)

	codigo := validarHastaAprobar(t, env, "52987654")

	// Crear el crédito como comercial (la sucursal sale del token)
	credResp := do(t, env.server, "POST", "/api/creditos",
		jsonBody(t, map[string]any{
			"cliente": map[string]any{
				"documento": "52987654", "nombre": "Maria", "apellido": "Gomez",
			},
			"monto":               1000000,
			"plazo":               12,
			"codigo_verificacion": codigo,
		}), env.comercialToken)
	require.Equal(t, http.StatusCreated, credResp.StatusCode)
	var credito struct {
		ID         string `json:"id"`
		Estado     string `json:"estado"`
		ValorCuota string `json:"valor_cuota"`
	}
	decodeJSON(t, credResp, &credito)
	assert.Equal(t, "aprobado", credito.Estado)
	assert.Equal(t, "97487", credito.ValorCuota)

	// El saldo de la sucursal subió por el principal
	assert.Equal(t, "1000000", saldoSucursal(t, env))

	// Abono en la sucursal emisora: no toca el saldo
	abonoResp := do(t, env.server, "POST", "/api/abonos",
		jsonBody(t, map[string]any{
			"credito_id": credito.ID,
			"monto":      250000,
		}), env.comercialToken)
	require.Equal(t, http.StatusCreated, abonoResp.StatusCode)
	assert.Equal(t, "1000000", saldoSucursal(t, env))

	// Saldo pendiente del crédito baja
	detResp := do(t, env.server, "GET", "/api/creditos/"+credito.ID, nil, env.comercialToken)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var detalle struct {
		SaldoPendiente string `json:"saldo_pendiente"`
	}
	decodeJSON(t, detResp, &detalle)
	assert.Equal(t, "750000", detalle.SaldoPendiente)

	// Cotización y liquidación (solo admin)
	quoteResp := do(t, env.server, "POST", "/api/liquidaciones/calcular",
		jsonBody(t, map[string]string{"sucursal_id": env.sucursalID}), env.adminToken)
	require.Equal(t, http.StatusOK, quoteResp.StatusCode)
	var quote struct {
		MontoLiquidado string `json:"monto_liquidado"`
	}
	decodeJSON(t, quoteResp, &quote)
	assert.Equal(t, "940500", quote.MontoLiquidado)

	liqResp := do(t, env.server, "POST", "/api/liquidaciones",
		jsonBody(t, map[string]string{
			"sucursal_id":   env.sucursalID,
			"banco":         "Bancolombia",
			"numero_cuenta": "123-456789-00",
		}), env.adminToken)
	require.Equal(t, http.StatusCreated, liqResp.StatusCode)
	var liq struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
	}
	decodeJSON(t, liqResp, &liq)
	assert.Equal(t, "pendiente", liq.Estado)

	// La liquidación dejó el saldo en cero
	assert.Equal(t, "0", saldoSucursal(t, env))
}

// Un comercial no puede liquidar ni administrar usuarios.
func TestE2E_RolesComercial(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/api/liquidaciones/calcular",
		jsonBody(t, map[string]string{"sucursal_id": env.sucursalID}), env.comercialToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, env.server, "GET", "/api/usuarios", nil, env.comercialToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Venta y anulación restauran el stock.
func TestE2E_VentaYAnulacion(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/api/productos",
		jsonBody(t, map[string]any{
			"codigo":       "7701001",
			"nombre":       "Arroz 500g",
			"categoria":    "granos",
			"precio_costo": 2000,
			"precio_venta": 3500,
			"stock_actual": 20,
			"stock_minimo": 5,
		}), env.adminToken)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	ventaResp := do(t, env.server, "POST", "/api/ventas",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"producto_id": prod.ID, "cantidad": 3}},
		}), env.comercialToken)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID     string `json:"id"`
		Total  string `json:"total"`
		Estado string `json:"estado"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "completada", venta.Estado)
	assert.Equal(t, "10500", venta.Total)

	stock := func() int {
		resp := do(t, env.server, "GET", "/api/productos/"+prod.ID, nil, env.comercialToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p struct {
			StockActual int `json:"stock_actual"`
		}
		decodeJSON(t, resp, &p)
		return p.StockActual
	}
	assert.Equal(t, 17, stock())

	anularResp := do(t, env.server, "DELETE", "/api/ventas/"+venta.ID,
		jsonBody(t, map[string]string{"motivo": "error de digitación"}), env.adminToken)
	require.Equal(t, http.StatusOK, anularResp.StatusCode)
	assert.Equal(t, 20, stock())
}

// El código de verificación es de un solo uso.
func TestE2E_CodigoUnSoloUso(t *testing.T) {
	env := setupTestEnv(t)
	codigo := validarHastaAprobar(t, env, "52111222")

	body := map[string]any{
		"cliente": map[string]any{
			"documento": "52111222", "nombre": "Ana", "apellido": "Diaz",
		},
		"monto":               200000,
		"plazo":               6,
		"codigo_verificacion": codigo,
	}
	resp := do(t, env.server, "POST", "/api/creditos", jsonBody(t, body), env.comercialToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Reusar el mismo código falla
	resp = do(t, env.server, "POST", "/api/creditos", jsonBody(t, body), env.comercialToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
