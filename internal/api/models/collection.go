package models

// ScheduledCollection represents a planned pickup linking a residue and a
// collection point, denormalized with referent names for display.
type ScheduledCollection struct {
	ID                      string     `json:"id"`
	ResidueID               string     `json:"residueId"`
	ResidueName             string     `json:"residueName"`
	CollectionPointID       string     `json:"collectionPointId"`
	CollectionPointName     string     `json:"collectionPointName"`
	CollectionPointLocation string     `json:"collectionPointLocation"`
	ScheduledDate           Timestamp  `json:"scheduledDate"`
	Status                  string     `json:"status"`
	EstimatedQuantity       float64    `json:"estimatedQuantity"`
	ActualQuantity          *float64   `json:"actualQuantity,omitempty"`
	CreatedAt               Timestamp  `json:"createdAt"`
	CompletedAt             *Timestamp `json:"completedAt,omitempty"`
	Notes                   *string    `json:"notes,omitempty"`
}

// ScheduledCollectionCreateRequest is the request body for scheduling a collection.
type ScheduledCollectionCreateRequest struct {
	ResidueID         string    `json:"residueId"`
	CollectionPointID string    `json:"collectionPointId"`
	ScheduledDate     Timestamp `json:"scheduledDate"`
	EstimatedQuantity float64   `json:"estimatedQuantity"`
	Notes             *string   `json:"notes,omitempty"`
}

// ScheduledCollectionUpdateRequest is the request body for updating a scheduled
// collection. All fields are optional; omitted fields are left unchanged.
type ScheduledCollectionUpdateRequest struct {
	ScheduledDate     *Timestamp `json:"scheduledDate,omitempty"`
	Status            *string    `json:"status,omitempty"`
	EstimatedQuantity *float64   `json:"estimatedQuantity,omitempty"`
	ActualQuantity    *float64   `json:"actualQuantity,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// CompleteCollectionRequest is the request body for completing a collection.
type CompleteCollectionRequest struct {
	ActualQuantity float64 `json:"actualQuantity"`
	Notes          *string `json:"notes,omitempty"`
}

// PagedScheduledCollections is a paginated list of scheduled collections.
type PagedScheduledCollections struct {
	Items []ScheduledCollection `json:"items"`
	Meta  PageMeta              `json:"meta"`
}
