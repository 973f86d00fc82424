package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/nutricoach/backend/config"
)

// ErrRendererUnavailable reports a PDF rendering service failure.
var ErrRendererUnavailable = errors.New("pdf renderer unavailable")

// ExportService turns a grocery list into a downloadable PDF by rendering
// minimal HTML and handing it to the external PDF rendering service.
type ExportService struct {
	rendererURL string
	client      *http.Client
}

// NewExportService creates a new ExportService instance.
func NewExportService(cfg *config.Config) *ExportService {
	return &ExportService{
		rendererURL: cfg.PDFRendererURL,
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// GroceryListPDF renders the display-cleaned grocery list as a PDF and
// returns the binary document.
func (s *ExportService) GroceryListPDF(ctx context.Context, email, displayList string) ([]byte, error) {
	doc := s.groceryHTML(email, displayList)

	req, err := http.NewRequestWithContext(ctx, "POST", s.rendererURL, strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRendererUnavailable, resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read document: %v", ErrRendererUnavailable, err)
	}
	return pdf, nil
}

func (s *ExportService) groceryHTML(email, displayList string) string {
	var buf bytes.Buffer
	buf.WriteString("<html><head><title>Grocery List</title></head><body>")
	buf.WriteString(fmt.Sprintf("<h1>Grocery List for %s</h1><ul>", html.EscapeString(email)))
	for _, item := range strings.Split(displayList, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		buf.WriteString("<li>" + html.EscapeString(item) + "</li>")
	}
	buf.WriteString("</ul></body></html>")
	return buf.String()
}
