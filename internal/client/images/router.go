package images

import (
	"context"
	"fmt"
	"strings"
)

// Router dispatches a reference to the source registered for its scheme.
// References without a scheme go to Files.
type Router struct {
	Files Source
	S3    Source
}

func (r Router) Open(ctx context.Context, ref string) (Image, error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		if r.S3 == nil {
			return Image{}, fmt.Errorf("%w: object storage is not configured", ErrUnsupportedSource)
		}
		return r.S3.Open(ctx, ref)
	case strings.Contains(ref, "://"):
		return Image{}, fmt.Errorf("%w: %q", ErrUnsupportedSource, ref)
	default:
		if r.Files == nil {
			return FileSource{}.Open(ctx, ref)
		}
		return r.Files.Open(ctx, ref)
	}
}
