// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileUpload is a file selected for upload alongside a project.
type FileUpload struct {
	Name        string
	ContentType string
	Content     []byte
}

// Attachment describes an uploaded file associated with an entity.
type Attachment struct {
	FileName string `json:"fileName" yaml:"file_name"`

	// FileURL is assigned by the attachment repository on upload.
	FileURL string `json:"fileUrl" yaml:"file_url"`

	EntityType string    `json:"entityType" yaml:"entity_type"`
	EntityID   string    `json:"entityId" yaml:"entity_id"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploaded_at"`
	FileSize   int64     `json:"fileSize" yaml:"file_size"`

	// Checksum is the hex-encoded SHA-256 of the file content.
	Checksum string `json:"checksum" yaml:"checksum"`
}
