package dto

type CrearClienteRequest struct {
	Documento       string  `json:"documento"        validate:"required"`
	Nombre          string  `json:"nombre"           validate:"required"`
	Apellido        string  `json:"apellido"         validate:"required"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarClienteRequest struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

type ClienteFilter struct {
	Documento string `form:"documento"`
	Nombre    string `form:"nombre"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteResponse struct {
	ID              string  `json:"id"`
	Documento       string  `json:"documento"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Telefono        *string `json:"telefono,omitempty"`
	Email           *string `json:"email,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	FechaNacimiento *string `json:"fecha_nacimiento,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
