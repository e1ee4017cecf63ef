package video

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/santavideo/types"
)

func TestImageMIMEType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"scene.jpg", "image/jpeg"},
		{"scene.JPEG", "image/jpeg"},
		{"dir.v2/scene.png", "image/png"},
		{"scene.webp", "image/webp"},
		{"scene.gif", "image/jpeg"},
		{"scene", "image/jpeg"},
		{"", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageMIMEType(tt.path))
		})
	}
}

// TestProperty_ImageMIMEType_UnknownFallsBack: 任意未识别扩展名都回退到 image/jpeg。
func TestProperty_ImageMIMEType_UnknownFallsBack(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ext := rapid.StringMatching(`[a-zA-Z0-9]{1,6}`).Filter(func(s string) bool {
			_, known := imageMIMETypes[strings.ToLower(s)]
			return !known
		}).Draw(rt, "ext")
		assert.Equal(rt, DefaultImageMIMEType, ImageMIMEType("christmas."+ext))
	})
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0644))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "tree.png", img.Name)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Len(t, img.Data, 4)
}

func TestLoadImage_Missing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.jpg"), t.TempDir()} {
		_, err := LoadImage(path)
		require.Error(t, err)
		assert.Equal(t, types.ErrInputMissing, types.GetErrorCode(err))
	}
}
