package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/network"
)

// Deadline bounds every request made by the Client.
const Deadline = time.Second

// Client fetches from one stream server.
type Client struct {
	base     *url.URL
	schema   Schema
	http     *http.Client
	deadline time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithSchema selects the catalog endpoint shape.
func WithSchema(s Schema) Option {
	return func(cl *Client) { cl.schema = s }
}

// WithDeadline overrides Deadline.
func WithDeadline(d time.Duration) Option {
	return func(cl *Client) { cl.deadline = d }
}

// New returns a Client for the server at base, e.g. http://127.0.0.1:5100.
func New(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server address %q must be an absolute URL", base)
	}

	c := &Client{
		base:     u,
		schema:   SchemaFlat,
		http:     network.Client,
		deadline: Deadline,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.schema.Valid() {
		return nil, fmt.Errorf("unknown catalog schema %q", c.schema)
	}
	return c, nil
}

// Base is the server address without a trailing slash.
func (c *Client) Base() string {
	return c.base.String()
}

// SourceURL is the HLS source for a stream id.
func (c *Client) SourceURL(id string) string {
	return c.base.JoinPath("hls", id).String()
}

// FetchCatalog issues one request for the catalog. No retries.
func (c *Client) FetchCatalog(ctx context.Context) (Catalog, error) {
	var cat Catalog
	err := c.get(ctx, c.schema.path(), func(r io.Reader) error {
		var err error
		cat, err = c.schema.decode(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("fetched %d streams from %s", len(cat), c.Base())
	return cat, nil
}

// FetchStream looks up the metadata of a single stream.
func (c *Client) FetchStream(ctx context.Context, id string) (StreamInfo, error) {
	var info StreamInfo
	err := c.get(ctx, "/api/stream/"+url.PathEscape(id), func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&info)
	})
	if err != nil {
		return StreamInfo{}, err
	}
	if info.ID == "" {
		info.ID = id
	}
	return info, nil
}

func (c *Client) get(ctx context.Context, path string, decode func(io.Reader) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.deadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		return &Failure{Kind: NetworkError, Detail: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warnf("GET %s: %s", path, resp.Status)
		return &Failure{Kind: ServerError, Code: resp.StatusCode}
	}

	if err := decode(resp.Body); err != nil {
		if ctx.Err() != nil {
			return classify(ctx, err)
		}
		return &Failure{Kind: NetworkError, Detail: "invalid response body", Err: err}
	}
	return nil
}

func classify(ctx context.Context, err error) *Failure {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Failure{Kind: Timeout, Err: err}
	}

	detail := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		detail = uerr.Err.Error()
	}
	return &Failure{Kind: NetworkError, Detail: detail, Err: err}
}
