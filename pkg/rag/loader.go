package rag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"github.com/sproutplan/sproutplan/pkg/types"
)

// LoadError reports a resource whose content could not be read. Batch
// ingestion records it and moves on to the next resource.
type LoadError struct {
	ResourceID string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load resource %s: %v", e.ResourceID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader resolves a resource record into plain text ready for chunking.
type Loader struct {
	client *http.Client
}

func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

func (l *Loader) Load(ctx context.Context, resource *types.Resource) (string, error) {
	var (
		text string
		err  error
	)
	switch resource.ResourceType {
	case types.RESOURCE_TYPE_TEXT:
		text = resource.ContentPath
	case types.RESOURCE_TYPE_LINK:
		text, err = l.loadLink(ctx, resource.ContentPath)
	case types.RESOURCE_TYPE_PDF:
		text, err = loadPDF(resource.ContentPath)
	default:
		err = fmt.Errorf("unknown resource type %q", resource.ResourceType)
	}
	if err != nil {
		return "", &LoadError{ResourceID: resource.ID, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &LoadError{ResourceID: resource.ID, Err: fmt.Errorf("resource content is empty")}
	}
	return text, nil
}

func (l *Loader) loadLink(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "SproutPlan-Loader/1.0")
	req.Header.Set("Accept", "text/html, text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return extractHTMLText(body)
	}
	return string(body), nil
}

// extractHTMLText walks the parsed document and collects visible text,
// skipping script and style subtrees.
func extractHTMLText(raw []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String(), nil
}

func loadPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var b bytes.Buffer
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return b.String(), nil
}
