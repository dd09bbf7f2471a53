package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
)

// TokenSource provides the bearer token for protected requests.
// session.Holder implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Client is a thin wrapper over the backend's REST surface. A Client built
// with a TokenSource attaches `Authorization: Bearer <token>` to every
// request and refuses to send anything while no token is held (fail closed).
// A public Client (nil TokenSource) never attaches a token, even if a prior
// session left one around.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     core.Logger
}

// NewClient returns the protected-endpoint client.
func NewClient(conf *core.Config, tokens TokenSource, log core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.API.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.API.Timeout},
		tokens:  tokens,
		log:     log,
	}
}

// NewPublicClient returns the client for the unauthenticated request path
// (login, signup).
func NewPublicClient(conf *core.Config, log core.Logger) *Client {
	return NewClient(conf, nil, log)
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Failing statuses are mapped onto the core error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	if c.tokens != nil {
		token, ok := c.tokens.Token()
		if !ok {
			return core.ErrAuthRequired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", errors.Wrapf(err, "%s %s", method, path))
		return errors.Wrapf(core.ErrUnavailable, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(core.ErrUnavailable, "reading response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
