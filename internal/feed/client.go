package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	hotProductsPath = "/hot_products"
	categoriesPath  = "/categories"

	defaultSort     = "LAST_VOLUME_DESC"
	defaultCurrency = "USD"
	defaultLanguage = "EN"
)

// Options parameterise the feed client.
type Options struct {
	BaseURL        string
	APIKey         string
	Host           string
	UserAgent      string
	Timeout        time.Duration
	Sort           string
	TargetCurrency string
	TargetLanguage string
	IncludeImages  bool
}

// Client fetches product listings from the upstream marketplace feed.
type Client struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs a feed client. Authentication headers are taken from
// the options on every request; the client performs no retries.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if opts.Sort == "" {
		opts.Sort = defaultSort
	}
	if opts.TargetCurrency == "" {
		opts.TargetCurrency = defaultCurrency
	}
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = defaultLanguage
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "feed_client").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

// FetchHotProducts retrieves one page of hot products for a category and
// returns them normalized. The result is never nil on success; an empty
// slice means the feed had nothing for this category/page.
func (c *Client) FetchHotProducts(ctx context.Context, category string, page int) ([]Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrCategoryRequired
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("sort", c.opts.Sort)
	query.Set("target_currency", c.opts.TargetCurrency)
	query.Set("target_language", c.opts.TargetLanguage)
	query.Set("cat_id", category)

	body, err := c.get(ctx, hotProductsPath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	if err := checkErrorMarker(body); err != nil {
		return nil, err
	}

	records, decodeErr := decodeRecords(body)
	if decodeErr != nil {
		return nil, &DecodeError{Err: decodeErr}
	}

	products := make([]Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.normalize(c.opts.IncludeImages))
	}

	c.logger.Debug().
		Str("category", category).
		Int("page", page).
		Int("products", len(products)).
		Msg("hot products fetched")

	return products, nil
}

// FetchCategories returns the raw category listing. The payload is opaque by
// contract; it is checked for an error marker but otherwise passed through.
func (c *Client) FetchCategories(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, categoriesPath)
	if err != nil {
		return nil, err
	}
	if err := checkErrorMarker(body); err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Err: errInvalidJSON}
	}
	return json.RawMessage(body), nil
}

// get issues a single request and reads the full body. The body is never
// streamed: the feed returns either a bare array or an error object, and the
// full text is needed to tell them apart and for diagnostic logging.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if c.opts.APIKey != "" {
		req.Header.Set("x-rapidapi-key", c.opts.APIKey)
	}
	if c.opts.Host != "" {
		req.Header.Set("x-rapidapi-host", c.opts.Host)
	}
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("feed response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 500),
		}
	}

	return body, nil
}

var errInvalidJSON = errors.New("response body is not valid JSON")

// checkErrorMarker inspects a successful response for the feed's structured
// error shape: a JSON object carrying an error or message field where an
// array was expected.
func checkErrorMarker(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var marker struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &marker); err != nil {
		return nil
	}
	if marker.Error != "" {
		return &UpstreamError{Message: marker.Error}
	}
	if marker.Message != "" {
		return &UpstreamError{Message: marker.Message}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
