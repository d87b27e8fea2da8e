package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Ensure both bases implement the interface.
var (
	_ Base = (*HTTPBase)(nil)
	_ Base = (*LocalBase)(nil)
)

// DefaultHTTPTimeout bounds one knowledge base request.
const DefaultHTTPTimeout = 120 * time.Second

// HTTPConfig configures a remote knowledge base service.
type HTTPConfig struct {
	// BaseURL is the service root, e.g. https://kb.example.com/v1.
	BaseURL string

	// APIKey is sent in the x-api-key header.
	APIKey string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// HTTPBase talks to a remote knowledge base service over REST.
type HTTPBase struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPBase creates a remote knowledge base client.
func NewHTTPBase(cfg HTTPConfig) (*HTTPBase, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("knowledge base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPBase{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

func (b *HTTPBase) documentsURL(kbID string) string {
	return b.baseURL + "/knowledge-bases/" + url.PathEscape(kbID) + "/documents"
}

// UploadAndTrain uploads f as multipart form field "file".
func (b *HTTPBase) UploadAndTrain(ctx context.Context, kbID string, f File) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	header.Set("Content-Type", f.MIME)
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.documentsURL(kbID), &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

// DeleteDocuments removes documents by file name.
func (b *HTTPBase) DeleteDocuments(ctx context.Context, kbID string, names []string) error {
	payload, err := json.Marshal(map[string][]string{"documents": names})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.documentsURL(kbID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *HTTPBase) do(req *http.Request) error {
	if b.apiKey != "" {
		req.Header.Set("x-api-key", b.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("knowledge base error (status %d): %s", resp.StatusCode, serviceError(body))
	}
	if gjson.ValidBytes(body) && gjson.GetBytes(body, "success").Type == gjson.False {
		return fmt.Errorf("knowledge base error: %s", serviceError(body))
	}
	return nil
}

// serviceError picks the most specific message out of an error body.
func serviceError(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "error", "detail", "message"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
