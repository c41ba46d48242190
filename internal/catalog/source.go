package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Source yields the raw bytes of one document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads a document from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches a document with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// maxDocumentBytes bounds a fetched document; real catalogs are well below it.
const maxDocumentBytes = 32 << 20

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", s.URL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", s.URL, err)
	}
	return data, nil
}

func (s HTTPSource) String() string { return s.URL }

// SourceFor picks an HTTPSource for http(s) locations and a FileSource
// for everything else.
func SourceFor(location string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}
