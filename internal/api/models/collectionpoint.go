package models

// CollectionPoint represents a waste drop-off site.
type CollectionPoint struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	ResponsiblePerson  string    `json:"responsiblePerson"`
	Contact            string    `json:"contact"`
	IsActive           bool      `json:"isActive"`
	AcceptedCategories string    `json:"acceptedCategories"`
	CreatedAt          Timestamp `json:"createdAt"`
}

// CollectionPointCreateRequest is the request body for creating a collection point.
type CollectionPointCreateRequest struct {
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	ResponsiblePerson  string  `json:"responsiblePerson"`
	Contact            string  `json:"contact"`
	AcceptedCategories string  `json:"acceptedCategories"`
}

// CollectionPointUpdateRequest is the request body for updating a collection point.
// All fields are optional; omitted fields are left unchanged.
type CollectionPointUpdateRequest struct {
	Name               *string  `json:"name,omitempty"`
	Location           *string  `json:"location,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	ResponsiblePerson  *string  `json:"responsiblePerson,omitempty"`
	Contact            *string  `json:"contact,omitempty"`
	IsActive           *bool    `json:"isActive,omitempty"`
	AcceptedCategories *string  `json:"acceptedCategories,omitempty"`
}

// PagedCollectionPoints is a paginated list of collection points.
type PagedCollectionPoints struct {
	Items []CollectionPoint `json:"items"`
	Meta  PageMeta          `json:"meta"`
}
