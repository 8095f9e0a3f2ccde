// Package media declares the Media Store contract and the folder layout
// used for uploaded assets.
//
// The store itself is opaque: it accepts an encoded image (a data URI or a
// remote URL), files it under a folder path, and returns a durable URL plus
// an identifier that can later be passed to Destroy.
package media

import (
	"context"
	"net/url"
	"strings"
)

// Folder paths used by the API.
const (
	RootFolder     = "sweet_memories"
	MemoriesFolder = RootFolder + "/memories"
	GalleryFolder  = RootFolder + "/folders"
)

// Asset describes an uploaded image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Store uploads and destroys hosted assets.
type Store interface {
	Upload(ctx context.Context, payload, folder string) (*Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

// ValidPayload reports whether payload is something the store may be asked
// to fetch: a base64 image data URI or an absolute http(s) URL. Anything
// else, a filesystem path in particular, is refused before it reaches the
// SDK, which would otherwise open it as a local file.
func ValidPayload(payload string) bool {
	if rest, ok := strings.CutPrefix(payload, "data:image/"); ok {
		meta, data, found := strings.Cut(rest, ",")
		return found && strings.HasSuffix(meta, ";base64") && isBase64(data)
	}

	u, err := url.Parse(payload)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isBase64(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '+', r == '/', r == '=', r == '\n':
			return false
		}
		return true
	}) < 0
}

// UploadFolder resolves the folder for a generic upload: the requested one,
// or RootFolder when none was given.
func UploadFolder(requested string) string {
	if f := strings.TrimSpace(requested); f != "" {
		return f
	}
	return RootFolder
}

// GalleryFolderFor resolves the folder for a gallery upload, nesting under
// GalleryFolder when a folder id is supplied.
func GalleryFolderFor(folderID string) string {
	if id := strings.TrimSpace(folderID); id != "" {
		return GalleryFolder + "/" + id
	}
	return GalleryFolder
}
