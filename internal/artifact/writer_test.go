package artifact

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var namePattern = regexp.MustCompile(`^santa_video_\d{8}_\d{6}(_\d+)?\.mp4$`)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")
	w.Now = fixedClock(time.Date(2025, 12, 24, 18, 30, 5, 0, time.Local))

	saved, err := w.Write([]byte("video"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "santa_video_20251224_183005.mp4"), saved.Path)
	assert.Equal(t, 5, saved.Bytes)

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "video", string(data))
}

func TestWriter_CollisionAddsSuffix(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "santa_video")
	w.Now = fixedClock(time.Date(2025, 12, 24, 18, 30, 5, 0, time.Local))

	first, err := w.Write([]byte("one"))
	require.NoError(t, err)
	second, err := w.Write([]byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, "santa_video_20251224_183005_1.mp4", filepath.Base(second.Path))
	assert.Regexp(t, namePattern, filepath.Base(second.Path))

	data, _ := os.ReadFile(first.Path)
	assert.Equal(t, "one", string(data))
}

func TestWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	saved, err := NewWriter(dir, "").Write(nil)
	require.NoError(t, err)
	assert.FileExists(t, saved.Path)
	assert.Zero(t, saved.Bytes)
}

func TestSaved_SizeMB(t *testing.T) {
	assert.InDelta(t, 2.5, Saved{Bytes: 5 * 512 * 1024}.SizeMB(), 1e-9)
}

// TestProperty_Writer_NamePattern: 任意时间点生成的文件名都符合时间戳模式。
func TestProperty_Writer_NamePattern(t *testing.T) {
	w := NewWriter("", "santa_video")
	rapid.Check(t, func(rt *rapid.T) {
		sec := rapid.Int64Range(0, 4102444800).Draw(rt, "unix")
		name := w.Name(time.Unix(sec, 0).UTC())
		if !namePattern.MatchString(name) {
			rt.Fatalf("name %q does not match pattern", name)
		}
	})
}
