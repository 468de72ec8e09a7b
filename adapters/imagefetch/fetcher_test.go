package imagefetch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResolveLocalImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0o644))

	img, ok := NewFetcher(time.Second).Resolve(path)
	require.True(t, ok)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, "image/png", img.ContentType())
}

func TestResolveURLImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	img, ok := NewFetcher(time.Second).Resolve(srv.URL + "/pic.png")
	require.True(t, ok)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, data, img.Data)
}

func TestResolveFailsSoft(t *testing.T) {
	notFoundSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFoundSrv.Close()

	garbageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an image"))
	}))
	defer garbageSrv.Close()

	fetcher := NewFetcher(time.Second)

	tests := []struct {
		name string
		ref  string
	}{
		{"empty reference", ""},
		{"whitespace reference", "   "},
		{"nan reference", "nan"},
		{"neither url nor path", "not-a-url-and-not-a-path"},
		{"missing local file", filepath.Join(t.TempDir(), "missing.png")},
		{"http 404", notFoundSrv.URL + "/pic.png"},
		{"undecodable payload", garbageSrv.URL + "/pic.png"},
		{"unreachable host", "http://127.0.0.1:1/pic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, ok := fetcher.Resolve(tt.ref)
			assert.False(t, ok)
			assert.Nil(t, img)
		})
	}
}

func TestResolveLocalNonImageFailsSoft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, ok := NewFetcher(time.Second).Resolve(path)
	assert.False(t, ok)
}
