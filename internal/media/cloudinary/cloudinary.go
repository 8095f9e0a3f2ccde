// Package cloudinary implements media.Store on the Cloudinary upload API.
package cloudinary

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/sakif/sweet-memories/internal/media"
)

var _ media.Store = (*Store)(nil)

// Credentials are the Cloudinary settings read from the environment.
// Either the three discrete fields or the single URL form may be used.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
	URL       string // cloudinary://<key>:<secret>@<cloud>
}

// Usable reports whether there is enough to attempt an upload: a cloud name
// or a connection URL.
func (c Credentials) Usable() bool {
	return c.CloudName != "" || c.URL != ""
}

// Complete reports whether all three discrete credentials are present.
// The health endpoint reports this value.
func (c Credentials) Complete() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// uploadAPI is the subset of *uploader.API the store calls.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Store uploads to and destroys from a Cloudinary account.
type Store struct {
	api uploadAPI
}

// New builds a Store. Discrete credentials win; the URL is the fallback.
// It returns an error when the credentials are not Usable.
func New(creds Credentials) (*Store, error) {
	if !creds.Usable() {
		return nil, errors.New("cloudinary: no cloud name or CLOUDINARY_URL configured")
	}

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if creds.CloudName != "" {
		cld, err = cloudinary.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	} else {
		cld, err = cloudinary.NewFromURL(creds.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: creating client: %w", err)
	}

	return &Store{api: &cld.Upload}, nil
}

// ErrLocalPath is returned for a payload the SDK would read from disk.
var ErrLocalPath = errors.New("cloudinary: payload is not a URL or data URI")

// Upload sends the payload (data URI or remote URL) into folder.
//
// The SDK opens any other string as a local file, so such payloads are
// refused here. It also reports API-level failures inside the result rather
// than as a Go error, so both paths are checked.
func (s *Store) Upload(ctx context.Context, payload, folder string) (*media.Asset, error) {
	if api.IsLocalFilePath(payload) {
		return nil, ErrLocalPath
	}

	res, err := s.api.Upload(ctx, payload, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("cloudinary: upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, errors.New(res.Error.Message)
	}

	return &media.Asset{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Width:    res.Width,
		Height:   res.Height,
	}, nil
}

// Destroy deletes the asset. A "not found" result is an error so callers
// can log it; they decide whether it matters.
func (s *Store) Destroy(ctx context.Context, publicID string) error {
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, res.Error.Message)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary: destroy %s: result %q", publicID, res.Result)
	}
	return nil
}
