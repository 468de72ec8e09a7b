package imagefetch

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	// Register the decoders the catalog sheets reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"catview/domain/catalog"
	"catview/internal"
)

var logger = internal.DefaultLogger.Named("imagefetch")

// Image is a resolved catalog image: raw bytes plus the detected format
type Image struct {
	Data   []byte
	Format string
}

// ContentType returns the MIME type for the detected format
func (i *Image) ContentType() string {
	return "image/" + i.Format
}

// Fetcher resolves image references to bytes. References with an http or
// https scheme are fetched over the network; everything else is treated as
// a local path. Every failure is soft: the caller gets (nil, false) and the
// view degrades to "no image", never an error.
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// NewFetcher creates a fetcher with the given network timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxSize: 20 * 1024 * 1024,
	}
}

// Resolve fetches and validates an image reference. The second return is
// false whenever the reference is absent, unreachable, or not a decodable
// image.
func (f *Fetcher) Resolve(ref string) (*Image, bool) {
	if catalog.IsAbsent(ref) {
		return nil, false
	}
	ref = strings.TrimSpace(ref)

	var data []byte
	var err error
	if isHTTPRef(ref) {
		data, err = f.fetchURL(ref)
	} else {
		data, err = f.readLocal(ref)
	}
	if err != nil {
		logger.Debug("image resolution failed for %q: %v", ref, err)
		return nil, false
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logger.Debug("image decode failed for %q: %v", ref, err)
		return nil, false
	}

	return &Image{Data: data, Format: format}, true
}

func isHTTPRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (f *Fetcher) fetchURL(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return readCapped(resp.Body, f.maxSize)
}

func (f *Fetcher) readLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > f.maxSize {
		return nil, fmt.Errorf("image exceeds %d bytes", f.maxSize)
	}
	return os.ReadFile(path)
}
