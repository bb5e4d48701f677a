package service

import (
	"context"
	"strings"

	"agroapi/internal/storage"
)

const defaultImagePrefix = "processed/"

// ObjectLister is the boundary to whichever object store holds the
// processed imagery.
type ObjectLister interface {
	ListObjects(ctx context.Context, prefix string) ([]storage.Objeto, error)
}

type ImagemService struct {
	store ObjectLister
}

func NewImagemService(store ObjectLister) *ImagemService {
	return &ImagemService{store: store}
}

// ListTiffImages returns the GeoTIFF objects under the given prefix.
func (s *ImagemService) ListTiffImages(ctx context.Context, prefix string) ([]storage.Objeto, error) {
	if prefix == "" {
		prefix = defaultImagePrefix
	}
	objetos, err := s.store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	imagens := make([]storage.Objeto, 0, len(objetos))
	for _, objeto := range objetos {
		name := strings.ToLower(objeto.Name)
		if strings.HasSuffix(name, ".tif") || strings.HasSuffix(name, ".tiff") {
			imagens = append(imagens, objeto)
		}
	}
	return imagens, nil
}
