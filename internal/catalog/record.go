// Package catalog holds the file-record model and the pure functions the
// catalog views are built from: name sanitizing, kind classification,
// conjunctive filtering, recency buckets and fixed-size pagination.
//
// Nothing here touches the network or the database, so the same code runs
// in the API server and in the terminal client.
package catalog

import "time"

// Coarse record types as written at upload time.
const (
	TypeImage = "image"
	TypeFile  = "file"
	TypeText  = "text"
)

// FileRecord is one uploaded object.
type FileRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Size         string    `json:"size"`
	SizeBytes    int64     `json:"size_bytes"`
	Type         string    `json:"type"`
	ContentType  string    `json:"content_type,omitempty"`
	StoragePath  string    `json:"storage_path"`
	ModifiedDate time.Time `json:"modified_date"`
	CreatedAt    time.Time `json:"created_at"`
	Summary      string    `json:"summary,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
}

// Kind is the closed classification of a record.
func (r FileRecord) Kind() Kind {
	return KindOf(r.Name, r.Type)
}

// HasTag reports whether tag is attached to the record.
func (r FileRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// addedAt is the timestamp recency buckets are measured from.
func (r FileRecord) addedAt() time.Time {
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.ModifiedDate
}
