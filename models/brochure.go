package models

import "time"

// Brochure is a downloadable marketing document managed by operators.
type Brochure struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" validate:"required"`
	URL       string    `json:"url" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadedFile describes an object stored through the upload endpoint.
type UploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
}
