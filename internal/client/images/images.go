// Package images turns user-selected screenshots into the text-safe payloads
// carried by a registration request.
//
// Images are read through a Source (local files, s3:// objects), capped at
// common.MaxImages, and base64-encoded entirely on the client before any
// request is sent.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
)

// DefaultMaxBytes bounds a single image read from any source.
const DefaultMaxBytes = 10 << 20

var (
	ErrNotImage          = errors.New("not an image")
	ErrUnsupportedSource = errors.New("unsupported image source")
)

// Image is a screenshot loaded into memory.
type Image struct {
	Name string
	Type string
	Data []byte
}

// Source loads the image a reference points to.
type Source interface {
	Open(ctx context.Context, ref string) (Image, error)
}

// Select keeps at most common.MaxImages references, in order. Extra
// selections are dropped without error.
func Select[T any](refs []T) []T {
	if len(refs) > common.MaxImages {
		return refs[:common.MaxImages]
	}
	return refs
}

// Load reads every reference through src.
func Load(ctx context.Context, src Source, refs []string) ([]Image, error) {
	out := make([]Image, 0, len(refs))
	for _, ref := range refs {
		img, err := src.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// Encode converts images into payloads. The base64 text carries no
// data-URL prefix.
func Encode(imgs []Image) []models.ImagePayload {
	out := make([]models.ImagePayload, len(imgs))
	for i, img := range imgs {
		out[i] = models.ImagePayload{
			Base64: base64.StdEncoding.EncodeToString(img.Data),
			Name:   img.Name,
			Type:   img.Type,
		}
	}
	return out
}

// DetectType picks a MIME type from the file name, falling back to content
// sniffing, and rejects anything that is not an image.
func DetectType(name string, data []byte) (string, error) {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		t = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		t = mt
	}
	if !strings.HasPrefix(t, "image/") {
		return "", fmt.Errorf("%s (%s): %w", name, t, ErrNotImage)
	}
	return t, nil
}
