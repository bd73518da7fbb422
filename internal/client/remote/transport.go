package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const requestTimeout = 15 * time.Second

// Transport handles low-level HTTP and authentication for the record store.
type Transport struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewTransport creates a transport with base URL and bearer token.
func NewTransport(baseURL, token string) *Transport {
	return &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// checkToken fails fast with common.ErrTokenExpired when the configured
// bearer token is a JWT past its expiry, instead of burning a network round
// trip. The signature is not verified here; that is the server's job.
// Opaque (non-JWT) tokens pass through.
func (t *Transport) checkToken() error {
	if t.authToken == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.authToken, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return common.ErrTokenExpired
	}
	return nil
}

// do performs one JSON request. A non-nil out is decoded from the response
// body. 404 maps to common.ErrorNotFound; any other non-2xx status and any
// transport failure map to common.ErrRemoteUnavailable.
func (t *Transport) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if err := t.checkToken(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.authToken != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+t.authToken)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode >= 400:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s: %s", common.ErrRemoteUnavailable, resp.Status, bytes.TrimSpace(b))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
