package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["avatar"][0]
}

func TestSaverWritesImage(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(Config{Dir: dir})
	require.NoError(t, err)

	name, err := saver.Save(fileHeader(t, "me.png", "image/png", []byte("PNGDATA")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"), "generated name should keep the extension, got %q", name)
	assert.NotContains(t, name, "me", "original name must be replaced")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("PNGDATA"), data)
}

func TestSaverRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(Config{Dir: dir})
	require.NoError(t, err)

	_, err = saver.Save(fileHeader(t, "notes.txt", "text/plain", []byte("hello")))
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected file must never reach storage")
}

func TestSaverCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewSaver(Config{Dir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaverCustomFilename(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(Config{
		Dir:      dir,
		Filename: func(original string) string { return "fixed" + filepath.Ext(original) },
	})
	require.NoError(t, err)

	name, err := saver.Save(fileHeader(t, "me.jpg", "image/jpeg", []byte("JPG")))
	require.NoError(t, err)
	assert.Equal(t, "fixed.jpg", name)
}

func TestDefaultFilename(t *testing.T) {
	a := DefaultFilename("avatar.png")
	b := DefaultFilename("avatar.png")
	assert.NotEqual(t, a, b, "two generated names must not collide")
	assert.True(t, strings.HasSuffix(a, ".png"))

	noExt := DefaultFilename("avatar")
	assert.False(t, strings.Contains(noExt, "."))
}

func TestURL(t *testing.T) {
	saver, err := NewSaver(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/uploads/123-abc.png", saver.URL("http://localhost:5000", "123-abc.png"))
}
