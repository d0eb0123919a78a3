package entities

// Treatment represents a billable procedure
type Treatment struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"` // minutes
	Price       *float64 `json:"price,omitempty"`
}

// CreateTreatmentRequest is the payload for POST /treatments
type CreateTreatmentRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}
