package service

import (
	"context"
	"errors"
	"time"

	"credipos/internal/config"
	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrCredencialesInvalidas = errors.New("documento o contraseña incorrectos")

// Claims embedded in every access token. SucursalID is only set for comercial
// users; the route guards use Rol and SucursalID to scope branch operations.
type Claims struct {
	UserID     string  `json:"user_id"`
	Documento  string  `json:"documento"`
	Rol        string  `json:"rol"`
	SucursalID *string `json:"sucursal_id,omitempty"`
	TokenType  string  `json:"token_type"` // "access" | "refresh"
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	usuarioRepo repository.UsuarioRepository
	cfg         *config.Config
}

func NewAuthService(usuarioRepo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarioRepo: usuarioRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarioRepo.FindByDocumento(ctx, req.Documento)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.buildTokens(usuario)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, errors.New("refresh token inválido o expirado")
	}
	usuario, err := s.usuarioRepo.FindByDocumento(ctx, claims.Documento)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.buildTokens(usuario)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidos")
	}
	return claims, nil
}

func (s *authService) buildTokens(usuario *model.Usuario) (*dto.LoginResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	access, err := s.signToken(usuario, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(usuario, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         *UsuarioToResponse(usuario),
	}, nil
}

func (s *authService) signToken(usuario *model.Usuario, tipo string, ttl time.Duration) (string, error) {
	var sucursalID *string
	if usuario.SucursalID != nil {
		v := usuario.SucursalID.String()
		sucursalID = &v
	}
	claims := Claims{
		UserID:     usuario.ID.String(),
		Documento:  usuario.Documento,
		Rol:        usuario.Rol,
		SucursalID: sucursalID,
		TokenType:  tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// UsuarioToResponse is shared by auth and the usuario CRUD.
func UsuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	var sucursalID *string
	if u.SucursalID != nil {
		v := u.SucursalID.String()
		sucursalID = &v
	}
	return &dto.UsuarioResponse{
		ID:         u.ID.String(),
		Documento:  u.Documento,
		Nombre:     u.Nombre,
		Apellido:   u.Apellido,
		Email:      u.Email,
		Rol:        u.Rol,
		SucursalID: sucursalID,
		Activo:     u.Activo,
	}
}
