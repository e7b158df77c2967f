package dto

type LoginRequest struct {
	Documento string `json:"documento" validate:"required"`
	Password  string `json:"password"  validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

// ─── Usuario CRUD ────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Documento string  `json:"documento"   validate:"required"`
	Nombre    string  `json:"nombre"      validate:"required"`
	Apellido  string  `json:"apellido"    validate:"required"`
	Email     *string `json:"email"       validate:"omitempty,email"`
	Password  string  `json:"password"    validate:"required,min=8"`
	Rol       string  `json:"rol"         validate:"required,oneof=comercial administrativo superusuario"`
	// SucursalID is required for comercial users; ignored for the rest.
	SucursalID *string `json:"sucursal_id" validate:"omitempty,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre     string  `json:"nombre"`
	Apellido   string  `json:"apellido"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Password   string  `json:"password"    validate:"omitempty,min=8"`
	Rol        string  `json:"rol"         validate:"omitempty,oneof=comercial administrativo superusuario"`
	SucursalID *string `json:"sucursal_id" validate:"omitempty,uuid"`
}

type UsuarioResponse struct {
	ID         string  `json:"id"`
	Documento  string  `json:"documento"`
	Nombre     string  `json:"nombre"`
	Apellido   string  `json:"apellido"`
	Email      *string `json:"email,omitempty"`
	Rol        string  `json:"rol"`
	SucursalID *string `json:"sucursal_id,omitempty"`
	Activo     bool    `json:"activo"`
}
