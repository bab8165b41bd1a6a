// Package expiry tracks hosted resources and the instant each one becomes
// eligible for cleanup.
package expiry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/inhies/go-bytesize"
)

// Record describes one tracked resource. Only ID, CreatedAt and ExpiresAt
// carry meaning for the registry; the remaining fields are stored and
// returned as-is.
type Record struct {
	ID            string
	FolderID      string
	FileName      string
	DownloadURL   string
	DirectLink    string
	DirectLinkID  string
	Size          int64
	MimeType      string
	DownloadCount int
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// NewRecord returns a record created at now that expires after ttl.
func NewRecord(id string, now time.Time, ttl time.Duration) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record id is required")
	}
	if ttl <= 0 {
		return Record{}, fmt.Errorf("expiry duration must be positive, got %s", ttl)
	}
	return Record{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: ExpiryTimestamp(ttl, now),
	}, nil
}

// Expired reports whether the record is due for cleanup at now.
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// HumanSize returns the payload size in a human-readable form.
func (r Record) HumanSize() string {
	return FormatFileSize(r.Size)
}

// recordJSON is the wire shape. Instants are milliseconds since the epoch.
type recordJSON struct {
	FileID        string `json:"fileId"`
	FolderID      string `json:"folderId,omitempty"`
	FileName      string `json:"fileName"`
	DownloadURL   string `json:"downloadUrl"`
	DirectLink    string `json:"directLink,omitempty"`
	DirectLinkID  string `json:"directLinkId,omitempty"`
	ExpiresAt     int64  `json:"expiresAt"`
	CreatedAt     int64  `json:"createdAt"`
	Size          int64  `json:"size"`
	MimeType      string `json:"mimetype"`
	DownloadCount int    `json:"downloadCount,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		FileID:        r.ID,
		FolderID:      r.FolderID,
		FileName:      r.FileName,
		DownloadURL:   r.DownloadURL,
		DirectLink:    r.DirectLink,
		DirectLinkID:  r.DirectLinkID,
		ExpiresAt:     r.ExpiresAt.UnixMilli(),
		CreatedAt:     r.CreatedAt.UnixMilli(),
		Size:          r.Size,
		MimeType:      r.MimeType,
		DownloadCount: r.DownloadCount,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{
		ID:            raw.FileID,
		FolderID:      raw.FolderID,
		FileName:      raw.FileName,
		DownloadURL:   raw.DownloadURL,
		DirectLink:    raw.DirectLink,
		DirectLinkID:  raw.DirectLinkID,
		ExpiresAt:     time.UnixMilli(raw.ExpiresAt),
		CreatedAt:     time.UnixMilli(raw.CreatedAt),
		Size:          raw.Size,
		MimeType:      raw.MimeType,
		DownloadCount: raw.DownloadCount,
	}
	return nil
}

// IDs returns the ids of records in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

var sizeUnits = []struct {
	size bytesize.ByteSize
	name string
}{
	{bytesize.TB, "TB"},
	{bytesize.GB, "GB"},
	{bytesize.MB, "MB"},
	{bytesize.KB, "KB"},
}

// FormatFileSize renders a byte count in 1024-based units rounded to two
// decimals with trailing zeros dropped, e.g. "1.5 KB" or "512 Bytes".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	b := bytesize.New(float64(size))
	for _, u := range sizeUnits {
		if b >= u.size {
			v := math.Round(float64(b)/float64(u.size)*100) / 100
			return strconv.FormatFloat(v, 'f', -1, 64) + " " + u.name
		}
	}
	return strconv.FormatInt(size, 10) + " Bytes"
}
