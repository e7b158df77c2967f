package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an end customer, keyed by national document number.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Documento       string    `gorm:"uniqueIndex;not null"`
	Nombre          string    `gorm:"not null"`
	Apellido        string    `gorm:"not null"`
	Telefono        *string
	Email           *string
	Direccion       *string
	FechaNacimiento *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
