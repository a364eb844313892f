// Package rawg is the HTTP client for the RAWG video game database API.
package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/metrics"
	"github.com/mmcdole/gamedeck/internal/tracing"
)

const (
	DefaultBaseURL = "https://api.rawg.io/api"
	defaultTimeout = 30 * time.Second
	userAgent      = "gamedeck/1.0"

	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 512
)

// Endpoint labels used in metrics, spans and errors
const (
	EndpointGame        = "game"
	EndpointScreenshots = "screenshots"
	EndpointMovies      = "movies"
	EndpointSearch      = "search"
	EndpointGames       = "games"
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("rawg %s: unexpected status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("rawg %s: unexpected status %d: %s", e.Endpoint, e.Status, e.Body)
}

// Is lets errors.Is(err, domain.ErrGameNotFound) match a 404 on a game endpoint.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrGameNotFound && e.Status == http.StatusNotFound
}

// Client implements domain.CatalogRepository for RAWG
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.CatalogRepository = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new RAWG API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAPIKey updates the API key
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// doRequest performs a keyed GET against path and decodes the JSON body into dest.
func (c *Client) doRequest(ctx context.Context, endpoint, path string, query url.Values, dest any) (err error) {
	if c.apiKey == "" {
		return domain.ErrMissingAPIKey
	}

	ctx, span := tracing.StartSpan(ctx, "rawg."+endpoint,
		attribute.String("rawg.endpoint", endpoint),
		attribute.String("rawg.path", path),
	)
	defer func() { tracing.EndSpan(span, err) }()

	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// The key is a query parameter, so log the path and query without it.
	c.logger.Debug("rawg request", "endpoint", endpoint, "path", path, "query", query.Encode())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCatalogRequest(endpoint, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Error("rawg request failed", "endpoint", endpoint, "error", redact(err.Error(), c.apiKey))
		return fmt.Errorf("%w: %s", domain.ErrCatalogUnavailable, endpoint)
	}
	defer resp.Body.Close()
	metrics.RecordCatalogRequest(endpoint, resp.StatusCode, start)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
		c.logger.Error("rawg request error", "endpoint", endpoint, "status", resp.StatusCode)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.logger.Error("JSON parse error", "endpoint", endpoint, "error", err)
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return nil
}

// Game returns the base record of a single game
func (c *Client) Game(ctx context.Context, id int) (*domain.GameDetail, error) {
	var resp GameDetailResponse
	if err := c.doRequest(ctx, EndpointGame, fmt.Sprintf("/games/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == 0 {
		return nil, domain.ErrGameNotFound
	}
	return MapGameDetail(resp), nil
}

// Screenshots returns the first page of screenshots for a game.
// A non-positive pageSize leaves the page size to the API.
func (c *Client) Screenshots(ctx context.Context, id int, pageSize int) ([]domain.Screenshot, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp ScreenshotListResponse
	path := fmt.Sprintf("/games/%d/screenshots", id)
	if err := c.doRequest(ctx, EndpointScreenshots, path, query, &resp); err != nil {
		return nil, err
	}
	return MapScreenshots(resp.Results), nil
}

// Movies returns the trailers published for a game
func (c *Client) Movies(ctx context.Context, id int) ([]domain.Video, error) {
	var resp MovieListResponse
	path := fmt.Sprintf("/games/%d/movies", id)
	if err := c.doRequest(ctx, EndpointMovies, path, nil, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// Search returns games matching name
func (c *Client) Search(ctx context.Context, name string, pageSize int) ([]domain.GameSummary, error) {
	query := url.Values{}
	query.Set("search", name)
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp GameListResponse
	if err := c.doRequest(ctx, EndpointSearch, "/games", query, &resp); err != nil {
		return nil, err
	}
	return MapListings(resp.Results), nil
}

// Games returns one page of the listing described by query
func (c *Client) Games(ctx context.Context, query url.Values) (domain.GamePage, error) {
	var resp GameListResponse
	if err := c.doRequest(ctx, EndpointGames, "/games", query, &resp); err != nil {
		return domain.GamePage{}, err
	}
	return MapGames(resp), nil
}

// redact removes the API key from s. Transport errors echo the request URL.
func redact(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "REDACTED")
}
