// Package depot implements the HTTP client for the remote package depot.
package depot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
)

const (
	apiPrefix = "/v1/depot"

	requestTimeout = 120 * time.Second
)

// Client talks to one depot instance over its v1 HTTP API. A Client is
// created per download run from the run's connection config and is safe for
// concurrent use.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	httpc     *http.Client
	log       ports.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a Client for the given depot.
func New(cfg domain.DepotConfig, log ports.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		token:     cfg.AuthToken,
		userAgent: fmt.Sprintf("%s/%s", cfg.Product, cfg.ProductVersion),
		httpc:     &http.Client{Timeout: requestTimeout},
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type identJSON struct {
	Origin  string `json:"origin"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Release string `json:"release"`
}

func (i identJSON) toDomain() domain.PackageIdent {
	return domain.PackageIdent{
		Origin:  i.Origin,
		Name:    i.Name,
		Version: i.Version,
		Release: i.Release,
	}
}

type packageJSON struct {
	Ident identJSON   `json:"ident"`
	TDeps []identJSON `json:"tdeps"`
}

// ResolveLatest resolves ident to the latest matching release in channel,
// together with its transitive dependency closure.
func (c *Client) ResolveLatest(ctx context.Context, ident domain.PackageIdent, target domain.Target, channel string) (domain.ResolvedPackage, error) {
	path := resolvePath(ident, channel)

	resp, err := c.get(ctx, path, targetQuery(target))
	if err != nil {
		return domain.ResolvedPackage{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		nerr := zerr.With(statusError(resp.StatusCode, domain.ErrPackageNotFound), "ident", ident.String())
		return domain.ResolvedPackage{}, zerr.With(nerr, "channel", channel)
	}

	var body packageJSON
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		derr := zerr.With(domain.ErrDepotAPI, "ident", ident.String())
		return domain.ResolvedPackage{}, zerr.Wrap(derr, "failed to decode depot response")
	}

	resolved := domain.ResolvedPackage{Ident: body.Ident.toDomain()}
	for _, dep := range body.TDeps {
		resolved.TDeps = append(resolved.TDeps, dep.toDomain())
	}

	if !resolved.Ident.FullyQualified() {
		derr := zerr.With(domain.ErrDepotAPI, "ident", ident.String())
		return domain.ResolvedPackage{}, zerr.Wrap(derr, "depot returned a partial ident")
	}

	c.log.Debug("resolved ident",
		"ident", ident.String(),
		"resolved", resolved.Ident.String(),
		"tdeps", len(resolved.TDeps),
	)
	return resolved, nil
}

// resolvePath picks the depot endpoint for ident. Fully-qualified idents hit
// the exact package endpoint; partial ones go through the channel's latest
// views.
func resolvePath(ident domain.PackageIdent, channel string) string {
	if ident.FullyQualified() {
		return fmt.Sprintf("%s/pkgs/%s/%s/%s/%s",
			apiPrefix,
			url.PathEscape(ident.Origin),
			url.PathEscape(ident.Name),
			url.PathEscape(ident.Version),
			url.PathEscape(ident.Release),
		)
	}
	if ident.Version != "" {
		return fmt.Sprintf("%s/channels/%s/%s/pkgs/%s/%s/latest",
			apiPrefix,
			url.PathEscape(ident.Origin),
			url.PathEscape(channel),
			url.PathEscape(ident.Name),
			url.PathEscape(ident.Version),
		)
	}
	return fmt.Sprintf("%s/channels/%s/%s/pkgs/%s/latest",
		apiPrefix,
		url.PathEscape(ident.Origin),
		url.PathEscape(channel),
		url.PathEscape(ident.Name),
	)
}

// get issues an authenticated GET against the depot API. query may be nil.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build depot request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		derr := zerr.With(domain.ErrDepotAPI, "url", u)
		return nil, errors.Join(derr, err)
	}
	return resp, nil
}

func targetQuery(target domain.Target) url.Values {
	return url.Values{"target": []string{target.String()}}
}

// statusError maps a non-OK depot status to a domain sentinel. notFound is
// the sentinel to use for 404, which differs between package and key
// endpoints.
func statusError(status int, notFound error) error {
	switch status {
	case http.StatusNotFound:
		return notFound
	case http.StatusNotImplemented:
		return domain.ErrUnsupportedTarget
	default:
		return zerr.With(domain.ErrDepotAPI, "status", status)
	}
}
