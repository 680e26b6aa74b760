package models

// Residue represents a tracked waste stock record.
type Residue struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	CurrentQuantity    float64    `json:"currentQuantity"`
	AlertThreshold     float64    `json:"alertThreshold"`
	AlertActive        bool       `json:"alertActive"`
	CreatedAt          Timestamp  `json:"createdAt"`
	LastCollectionDate *Timestamp `json:"lastCollectionDate,omitempty"`
}

// ResidueCreateRequest is the request body for creating a residue.
type ResidueCreateRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	CurrentQuantity float64 `json:"currentQuantity"`
	AlertThreshold  float64 `json:"alertThreshold"`
}

// ResidueUpdateRequest is the request body for updating a residue.
// All fields are optional; omitted fields are left unchanged.
type ResidueUpdateRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
	CurrentQuantity *float64 `json:"currentQuantity,omitempty"`
	AlertThreshold  *float64 `json:"alertThreshold,omitempty"`
}

// PagedResidues is a paginated list of residues.
type PagedResidues struct {
	Items []Residue `json:"items"`
	Meta  PageMeta  `json:"meta"`
}

// ReconcileResult reports the outcome of an alert reconciliation run.
type ReconcileResult struct {
	Updated bool `json:"updated"`
}
