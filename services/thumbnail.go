package services

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"

	"github.com/disintegration/imaging"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".webp": true,
}

func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return imageExtensions[ext]
}

// GenerateThumbnail renders a JPEG thumbnail of the image read from r,
// sized per configuration.
func GenerateThumbnail(r io.Reader) (*bytes.Buffer, error) {
	cfg := config.AppConfig

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, cfg.Thumbnail.Width, cfg.Thumbnail.Height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(cfg.Thumbnail.Quality)); err != nil {
		return nil, err
	}
	return &buf, nil
}
