package models

// Notification represents an operator-facing notification, optionally linked
// to a residue and/or collection point.
type Notification struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Message             string    `json:"message"`
	NotificationType    string    `json:"notificationType"`
	IsRead              bool      `json:"isRead"`
	CreatedAt           Timestamp `json:"createdAt"`
	ResidueID           *string   `json:"residueId,omitempty"`
	ResidueName         *string   `json:"residueName,omitempty"`
	CollectionPointID   *string   `json:"collectionPointId,omitempty"`
	CollectionPointName *string   `json:"collectionPointName,omitempty"`
}

// NotificationCreateRequest is the request body for creating a notification.
type NotificationCreateRequest struct {
	Title             string  `json:"title"`
	Message           string  `json:"message"`
	NotificationType  string  `json:"notificationType"`
	ResidueID         *string `json:"residueId,omitempty"`
	CollectionPointID *string `json:"collectionPointId,omitempty"`
}

// NotificationUpdateRequest is the request body for updating a notification.
type NotificationUpdateRequest struct {
	IsRead *bool `json:"isRead,omitempty"`
}

// PagedNotifications is a paginated list of notifications.
type PagedNotifications struct {
	Items []Notification `json:"items"`
	Meta  PageMeta       `json:"meta"`
}

// UnreadCount reports the number of unread notifications.
type UnreadCount struct {
	Count int `json:"count"`
}
