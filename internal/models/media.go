package models

import "time"

// MediaStatus tracks the upload lifecycle of an object.
type MediaStatus string

const (
	// MediaPending means an upload URL was issued but the object is not yet
	// referenced by any title or chapter. Pending objects are garbage
	// collected by the cleanup job.
	MediaPending MediaStatus = "PENDING"
	// MediaFixed means the object is referenced and must be kept.
	MediaFixed MediaStatus = "FIXED"
)

// Media is the database record of one object in the media bucket.
type Media struct {
	ID               string      `json:"id"`
	ObjectKey        string      `json:"object_key"`
	OriginalFilename string      `json:"original_filename"`
	ContentType      string      `json:"content_type"`
	Status           MediaStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

// UploadTicket is returned when a client requests a presigned upload URL.
type UploadTicket struct {
	MediaID   string `json:"media_id"`
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}
