package filestorage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
)

// ResourceType is the media class an object is stored as.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceAuto  ResourceType = "auto"
)

// ErrEmptyPublicID is returned when Delete is called without an id.
var ErrEmptyPublicID = errors.New("public id is required")

// UploadInput describes one object to store.
type UploadInput struct {
	Reader       io.Reader
	Filename     string
	Folder       string
	ResourceType ResourceType
	Size         int64
}

// UploadResult is what the object store hands back for a stored object.
type UploadResult struct {
	URL          string
	PublicID     string
	ResourceType ResourceType
}

// ObjectStore is the media collaborator. PublicID is the handle used to delete.
type ObjectStore interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	// PublicIDFromURL maps a delivery URL of this store back to its public id, or "".
	PublicIDFromURL(url string) string
}

// HeaderSize is the number of leading bytes DetectResourceType needs.
const HeaderSize = 12

var (
	sigPNG  = []byte{0x89, 0x50, 0x4e, 0x47}
	sigJPEG = []byte{0xff, 0xd8}
	sigGIF  = []byte{0x47, 0x49, 0x46, 0x38}
	sigMPEG = []byte{0x00, 0x00, 0x01}
	sigWebM = []byte{0x1a, 0x45, 0xdf, 0xa3}
)

// DetectResourceType classifies content by its magic bytes.
func DetectResourceType(header []byte) ResourceType {
	switch {
	case bytes.HasPrefix(header, sigPNG), bytes.HasPrefix(header, sigJPEG), bytes.HasPrefix(header, sigGIF):
		return ResourceImage
	case len(header) >= 8 && string(header[4:8]) == "ftyp",
		bytes.HasPrefix(header, sigMPEG),
		bytes.HasPrefix(header, sigWebM):
		return ResourceVideo
	default:
		return ResourceAuto
	}
}

// PublicIDFromURL derives the public id of a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v1712/posts/7/abc.png -> posts/7/abc.
// It returns "" when the URL has no upload segment.
func PublicIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if len(rest) > 1 && isVersionSegment(rest[0]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, path.Ext(id))
	}
	return ""
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
