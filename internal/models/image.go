package models

import "github.com/google/uuid"

// ImageResource is an uploaded file as the backend reports it.
type ImageResource struct {
	ID  uuid.UUID `json:"id"`
	Key string    `json:"key,omitempty"`
	URL string    `json:"url"`
}
