package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
)

// HTTPTransport talks JSON to the REST API.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport for addr. A bare host:port gets an
// http:// scheme. hc may be nil.
func NewHTTPTransport(addr string, hc *http.Client) *HTTPTransport {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPTransport{baseURL: strings.TrimRight(addr, "/"), client: hc}
}

func (t *HTTPTransport) Invoke(ctx context.Context, call *Call) error {
	ep, err := lookup(call.Op)
	if err != nil {
		return err
	}
	path, err := ep.expand(call.Params)
	if err != nil {
		return fmt.Errorf("%s: %w", call.Op, err)
	}

	var body io.Reader
	if call.Request != nil {
		b, err := json.Marshal(call.Request)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", call.Op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, t.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", call.Op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := AccessToken(ctx); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return newStatusError(call.Op, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newStatusError(call.Op, 0, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(call.Op, resp.StatusCode, serverMessage(raw), nil)
	}

	if call.Response == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, call.Response); err != nil {
		return fmt.Errorf("%s: decode response: %w", call.Op, err)
	}
	return nil
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// serverMessage extracts "error" or "message" from a JSON error body.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
