package images

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/appgallery/internal/filex"
)

// FileSource reads images from the local filesystem.
type FileSource struct {
	MaxBytes int64
}

func (s FileSource) Open(_ context.Context, ref string) (Image, error) {
	path, err := filex.ExpandPath(ref)
	if err != nil {
		return Image{}, err
	}

	max := s.MaxBytes
	if max == 0 {
		max = DefaultMaxBytes
	}
	data, err := filex.ReadLimited(path, max)
	if err != nil {
		return Image{}, err
	}

	name := filepath.Base(path)
	t, err := DetectType(name, data)
	if err != nil {
		return Image{}, err
	}
	return Image{Name: name, Type: t, Data: data}, nil
}
