package service

import (
	"context"
	"testing"

	"credipos/internal/config"
	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (AuthService, *stubUsuarioRepo) {
	usuarioRepo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(usuarioRepo, cfg), usuarioRepo
}

func seedUsuario(repo *stubUsuarioRepo, documento, password, rol string, sucursalID *uuid.UUID) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Documento:    documento,
		Nombre:       "Laura",
		Apellido:     "Perez",
		PasswordHash: string(hash),
		Rol:          rol,
		SucursalID:   sucursalID,
		Activo:       true,
	}
	repo.usuarios[documento] = u
	return u
}

func TestLogin_EmiteAccessYRefresh(t *testing.T) {
	svc, usuarioRepo := buildAuthSvc()
	sucursalID := uuid.New()
	seedUsuario(usuarioRepo, "52123456", "clave-segura", model.RolComercial, &sucursalID)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Documento: "52123456", Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RolComercial, resp.User.Rol)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "52123456", claims.Documento)
	require.NotNil(t, claims.SucursalID)
	assert.Equal(t, sucursalID.String(), *claims.SucursalID)

	refreshClaims, err := svc.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	svc, usuarioRepo := buildAuthSvc()
	seedUsuario(usuarioRepo, "52123456", "clave-segura", model.RolAdministrativo, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Documento: "52123456", Password: "otra-clave",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Documento: "00000000", Password: "clave-segura",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	svc, usuarioRepo := buildAuthSvc()
	u := seedUsuario(usuarioRepo, "52123456", "clave-segura", model.RolAdministrativo, nil)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Documento: "52123456", Password: "clave-segura",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestRefresh_RechazaAccessToken(t *testing.T) {
	svc, usuarioRepo := buildAuthSvc()
	seedUsuario(usuarioRepo, "52123456", "clave-segura", model.RolAdministrativo, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Documento: "52123456", Password: "clave-segura",
	})
	require.NoError(t, err)

	// Un access token no sirve para refrescar
	_, err = svc.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorContains(t, err, "refresh token")

	// El refresh token sí emite un par nuevo
	renovado, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestValidateToken_FirmaIncorrecta(t *testing.T) {
	svc, usuarioRepo := buildAuthSvc()
	seedUsuario(usuarioRepo, "52123456", "clave-segura", model.RolAdministrativo, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Documento: "52123456", Password: "clave-segura",
	})
	require.NoError(t, err)

	otro, _ := buildAuthSvc()
	otroCfg := otro.(*authService)
	otroCfg.cfg.JWTSecret = "otro-secreto"
	_, err = otroCfg.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}
