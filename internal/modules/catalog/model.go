package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is a read-only reference entity; products point at it but this
// module never authors categories.
type Category struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name,omitempty"`
	Slug string    `json:"slug,omitempty"`
}

// Product is a catalog entry. Photo bytes live alongside the record and are
// excluded from every read projection except the photo endpoint.
type Product struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    *Category `json:"category"`
	Quantity    int       `json:"quantity"`
	Shipping    bool      `json:"shipping"`
	Photo       []byte    `json:"-"`
	PhotoType   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MaxPhotoBytes is the size ceiling for an uploaded product photo.
const MaxPhotoBytes = 1000000
