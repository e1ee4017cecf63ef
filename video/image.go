package video

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BaSui01/santavideo/types"
)

// DefaultImageMIMEType is used for any extension not listed in imageMIMETypes.
const DefaultImageMIMEType = "image/jpeg"

var imageMIMETypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// ImageMIMEType resolves the MIME type of an image from its file extension.
func ImageMIMEType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mt, ok := imageMIMETypes[ext]; ok {
		return mt
	}
	return DefaultImageMIMEType
}

// Image is a source image held as opaque bytes.
type Image struct {
	Name     string
	Data     []byte
	MIMEType string
}

// LoadImage reads an image file into memory.
func LoadImage(path string) (*Image, error) {
	if path == "" {
		return nil, types.NewInputError("image path is empty", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, types.NewInputError("image file not found: "+path, err)
	}
	if info.IsDir() {
		return nil, types.NewInputError("image path is a directory: "+path, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewInputError("failed to read image: "+path, err)
	}
	return &Image{
		Name:     filepath.Base(path),
		Data:     data,
		MIMEType: ImageMIMEType(path),
	}, nil
}
