package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// Source produces a catalog document.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
}

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// doGet performs a GET request and decodes the JSON response into dst.
func doGet(ctx context.Context, client *http.Client, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// ---- HTTP ----

// HTTPSource fetches the catalog document from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource constructs an HTTPSource with the default client timeout.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url, client: newHTTPClient()}
}

// NewHTTPSourceWithClient constructs an HTTPSource using the given client (for tests).
func NewHTTPSourceWithClient(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{url: url, client: client}
}

// Fetch downloads and decodes the catalog document.
func (s *HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	var doc Document
	if err := doGet(ctx, s.client, s.url, &doc); err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	return &doc, nil
}

func (s *HTTPSource) String() string { return s.url }

// ---- File ----

// FileSource reads the catalog document from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource constructs a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file being read.
func (s *FileSource) Path() string { return s.path }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", s.path, err)
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog %s: %w", s.path, err)
	}
	return &doc, nil
}

func (s *FileSource) String() string { return "file:" + s.path }

// SourceFor picks an HTTPSource for http(s) URLs and a FileSource otherwise.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return NewFileSource(strings.TrimPrefix(location, "file:"))
}
