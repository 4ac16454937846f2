package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusNotProcessed is the initial status of a freshly settled order.
const StatusNotProcessed = "Not Process"

// Order is the local record of a successfully settled checkout. It is
// written exactly once, after the gateway confirms the charge, and never
// mutated here afterwards.
type Order struct {
	ID        uuid.UUID       `json:"_id"`
	Products  []uuid.UUID     `json:"products"`
	Payment   json.RawMessage `json:"payment"`
	Buyer     uuid.UUID       `json:"buyer"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
