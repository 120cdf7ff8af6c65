package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/tubeclone/internal/catalog"
)

// DefaultChannel is the channel name attached to uploads.
const DefaultChannel = "Your Channel"

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrVideoURLRequired = errors.New("video URL is required")
	ErrVideoURLInvalid  = errors.New("video URL must be an absolute http or https URL")
)

// Creator stores a new video. *backend.Client implements it.
type Creator interface {
	Upload(ctx context.Context, req catalog.Upload) (catalog.Video, error)
}

// UploadFields is what the upload form collects.
type UploadFields struct {
	Title       string
	Description string
	VideoURL    string
}

// Validate returns every problem with the fields joined into one error.
func (f UploadFields) Validate() error {
	var errs []error
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, ErrTitleRequired)
	}
	raw := strings.TrimSpace(f.VideoURL)
	if raw == "" {
		errs = append(errs, ErrVideoURLRequired)
	} else if u, err := url.ParseRequestURI(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ErrVideoURLInvalid)
	}
	return errors.Join(errs...)
}

// Payload builds the request body.
func (f UploadFields) Payload() catalog.Upload {
	return catalog.Upload{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		VideoURL:    strings.TrimSpace(f.VideoURL),
		Channel:     DefaultChannel,
	}
}

// SubmitUpload validates fields and asks creator to store the video. On
// success it returns the created record so the caller can open it. Nothing
// is inserted into any view on either outcome.
func SubmitUpload(ctx context.Context, creator Creator, fields UploadFields) (catalog.Video, error) {
	if err := fields.Validate(); err != nil {
		return catalog.Video{}, err
	}
	if creator == nil {
		return catalog.Video{}, errors.New("no upload endpoint configured")
	}
	v, err := creator.Upload(ctx, fields.Payload())
	if err != nil {
		return catalog.Video{}, fmt.Errorf("upload video: %w", err)
	}
	return v, nil
}
