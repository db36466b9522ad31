package domain

import (
	"time"

	"github.com/google/uuid"
)

// Printer is a device referencing its brand and two consumables by id.
// References are not checked for existence.
type Printer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Brand     uuid.UUID `json:"brand"`
	Toner     uuid.UUID `json:"toner"`
	Drum      uuid.UUID `json:"drum"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPrinter returns a printer with a fresh id.
func NewPrinter(name, model string, brand, toner, drum uuid.UUID) *Printer {
	return &Printer{
		ID:        uuid.New(),
		Name:      name,
		Model:     model,
		Brand:     brand,
		Toner:     toner,
		Drum:      drum,
		CreatedAt: time.Now().UTC(),
	}
}
