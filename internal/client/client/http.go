package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/dmitrijs2005/appgallery/internal/logging"
	"github.com/dmitrijs2005/appgallery/internal/netx"
	"github.com/google/uuid"
)

var ErrInvalidEndpoint = errors.New("invalid endpoint url")

type HTTPClient struct {
	endpoint *url.URL
	hc       *http.Client
	log      logging.Logger
	newID    func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the endpoint at rawURL, which must be
// an absolute http(s) URL.
func NewHTTPClient(rawURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, rawURL)
	}

	c := &HTTPClient{
		endpoint: u,
		hc:       &http.Client{},
		log:      logging.Nop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) FetchAll(ctx context.Context) ([]models.Entry, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("action", common.ActionFetchApps)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, common.ActionFetchApps, req)
	if err != nil {
		return nil, err
	}

	entries := []models.Entry{}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return entries, nil
	}
	if err := json.Unmarshal(resp.Data, &entries); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedResponse, err)
	}
	return entries, nil
}

func (c *HTTPClient) Register(ctx context.Context, fields models.Fields, password string, images []models.ImagePayload) (string, error) {
	resp, err := c.post(ctx, common.ActionRegisterApp, models.RegisterRequest{
		Action:   common.ActionRegisterApp,
		Fields:   fields,
		Password: password,
		Images:   images,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Update(ctx context.Context, id string, fields models.Fields) (string, error) {
	resp, err := c.post(ctx, common.ActionUpdateApp, models.UpdateRequest{
		Action: common.ActionUpdateApp,
		ID:     id,
		Fields: fields,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string, password string) (string, error) {
	resp, err := c.post(ctx, common.ActionDeleteApp, models.CredentialRequest{
		Action:   common.ActionDeleteApp,
		ID:       id,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyPassword reports the endpoint's verdict. A success:false answer is a
// plain false, not an error.
func (c *HTTPClient) VerifyPassword(ctx context.Context, id string, password string) (bool, error) {
	_, err := c.post(ctx, common.ActionVerifyPassword, models.CredentialRequest{
		Action:   common.ActionVerifyPassword,
		ID:       id,
		Password: password,
	})
	if errors.Is(err, ErrRemoteFailure) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *HTTPClient) post(ctx context.Context, action string, payload any) (*models.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", common.PlainTextContentType)

	return c.do(ctx, action, req)
}

// do sends req and turns the text body into a Response, mapping every
// failure onto the package sentinels.
func (c *HTTPClient) do(ctx context.Context, action string, req *http.Request) (*models.Response, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = c.newID()
		ctx = common.WithRequestID(ctx, reqID)
	}
	req.Header.Set(common.RequestIDHeaderName, reqID)
	log := c.log.With("action", action)

	start := time.Now()
	text, err := netx.DoText(c.hc, req)
	if err != nil {
		log.Warn(ctx, "endpoint unreachable", "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	log.Debug(ctx, "endpoint response", "body", string(text), "elapsed", time.Since(start))

	var resp models.Response
	if err := json.Unmarshal(text, &resp); err != nil {
		log.Warn(ctx, "endpoint response is not JSON", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !resp.Success {
		log.Info(ctx, "endpoint rejected action", "message", resp.Message)
		return nil, &RemoteError{Action: action, Message: resp.Message}
	}

	log.Info(ctx, "endpoint action succeeded", "elapsed", time.Since(start))
	return &resp, nil
}
