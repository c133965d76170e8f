package postapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNotJSON      = errors.New("api returned a non-json response")
	ErrUnsuccessful = errors.New("api reported failure")
	ErrNoData       = errors.New("api returned no data")
)

const (
	cacheKeyPrefix     = "postapi::"
	defaultPage        = 1
	defaultLimit       = 20
	aggregateLimit     = 1000
	maxResponseBytes   = 10 << 20
	defaultHTTPTimeout = 10 * time.Second
)

// APIError is a non-2xx answer from the blog API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func newAPIError(status int, body string) *APIError {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return &APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("blog api unavailable (HTTP %d), check the network or contact the administrator", status),
		}
	}
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP %d: %s", status, strings.TrimSpace(body)),
	}
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// unwrap returns the payload of {success, data} envelopes, or the whole body
// when the API answered without one.
func unwrap(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Success == nil {
		return trimmed, nil
	}
	if !*env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, firstOf(env.Message, env.Error, "no message"))
	}
	return env.Data, nil
}

type NewClientParams struct {
	BaseURL     string
	APIKey      string
	HTTPClient  *http.Client
	RedisClient *redis.Client
	Timeout     time.Duration
	// CacheTTL of 0 disables caching of GET responses.
	CacheTTL    time.Duration
	EnableDebug bool
	Metrics     *metrics.Manager
}

// Client talks to the third-party blog API.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	redisClient *redis.Client
	timeout     time.Duration
	cacheTTL    time.Duration
	debug       bool
	metrics     *metrics.Manager
}

func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(params.BaseURL, "/"),
		apiKey:      params.APIKey,
		httpClient:  httpClient,
		redisClient: params.RedisClient,
		timeout:     timeout,
		cacheTTL:    params.CacheTTL,
		debug:       params.EnableDebug,
		metrics:     params.Metrics,
	}
}

func (c *Client) cacheEnabled() bool {
	return c.redisClient != nil && c.cacheTTL > 0
}

func cacheKey(path string, query url.Values) string {
	key := cacheKeyPrefix + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	return key
}

func (c *Client) countCache(result string) {
	if c.metrics != nil {
		c.metrics.CounterPostAPICache.WithLabelValues(result).Inc()
	}
}

func (c *Client) cached(ctx context.Context, key string) []byte {
	if !c.cacheEnabled() {
		return nil
	}
	val, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.countCache("miss")
			log.Tracef("blog api cache miss [%s]", key)
		} else {
			c.countCache("error")
			log.Errorf("failed to get blog api response from redis [%s]: %s", key, err)
		}
		return nil
	}
	c.countCache("hit")
	return val
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if !c.cacheEnabled() {
		return
	}
	if err := c.redisClient.Set(ctx, key, body, c.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache blog api response in redis [%s]: %s", key, err)
	}
}

// invalidate drops every cached response after a write.
func (c *Client) invalidate(ctx context.Context) {
	if !c.cacheEnabled() {
		return
	}

	var keys []string
	iter := c.redisClient.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Errorf("failed to scan blog api cache keys: %s", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Errorf("failed to invalidate %d blog api cache keys: %s", len(keys), err)
		return
	}
	log.Debugf("invalidated %d blog api cache keys", len(keys))
}

// do sends one request and returns the unwrapped payload. GET responses are
// served from and stored in the redis cache.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (_ json.RawMessage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "postapi.request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("postapi.path", path),
	)

	key := cacheKey(path, query)
	if method == http.MethodGet {
		if cachedBody := c.cached(ctx, key); cachedBody != nil {
			span.SetAttributes(attribute.Bool("postapi.from-cache", true))
			return unwrap(cachedBody)
		}
	}

	respBody, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	data, err := unwrap(respBody)
	if err != nil {
		return nil, err
	}

	switch method {
	case http.MethodGet:
		c.store(ctx, key, respBody)
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		c.invalidate(ctx)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		req.Header.Set("X-API-Key", c.apiKey)
	}

	if c.debug {
		log.Debugf("blog api request: %s %s", method, reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.debug {
			log.Debugf("blog api error %d: %s", resp.StatusCode, respBody)
		}
		return nil, newAPIError(resp.StatusCode, string(respBody))
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if c.debug {
			log.Debugf("blog api non-json response: %.200s", respBody)
		}
		return nil, ErrNotJSON
	}

	if c.debug {
		log.Debugf("blog api response %d: %.200s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	q.Set("status", firstOf(p.Status, StatusPublished))
	page := p.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Tags != "" {
		q.Set("tags", p.Tags)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// decodePostList accepts {posts, total} as well as a bare array.
func decodePostList(data json.RawMessage) (*PostList, error) {
	trimmed := bytes.TrimSpace(data)
	var raw []apiPost
	total := -1

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode posts: %w", err)
		}
	} else if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		var page struct {
			Posts []apiPost `json:"posts"`
			Total *int      `json:"total"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("decode posts: %w", err)
		}
		raw = page.Posts
		if page.Total != nil {
			total = *page.Total
		}
	}

	posts := transformPosts(raw)
	if total < 0 {
		total = len(posts)
	}
	return &PostList{Posts: posts, Total: total}, nil
}

// decodePost returns nil for an empty or null payload.
func decodePost(data json.RawMessage) (*blog.Post, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var raw apiPost
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	p := transformPost(raw)
	return &p, nil
}

func (c *Client) ListPosts(ctx context.Context, params ListParams) (*PostList, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/posts", params.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return decodePostList(data)
}

// GetPost returns nil without error when the API answers 404.
func (c *Client) GetPost(ctx context.Context, id string) (*blog.Post, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return decodePost(data)
}

// GetPostBySlug returns nil without error when the API answers 404.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/posts/slug/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by slug %s: %w", slug, err)
	}
	return decodePost(data)
}

func (c *Client) CreatePost(ctx context.Context, payload PostPayload) (*blog.Post, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/posts", nil, payload)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return requirePost("create post", data)
}

func (c *Client) UpdatePost(ctx context.Context, id string, payload PostPayload) (*blog.Post, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), nil, payload)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return requirePost("update post "+id, data)
}

// requirePost decodes the post a write answered with; writes always return one.
func requirePost(op string, data json.RawMessage) (*blog.Post, error) {
	post, err := decodePost(data)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoData)
	}
	return post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (c *Client) Authors(ctx context.Context) ([]blog.Author, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/authors", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	var raw []apiAuthor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	authors := make([]blog.Author, len(raw))
	for i := range raw {
		a := transformAuthor(&raw[i])
		if a.ID == "" {
			a.ID = strconv.Itoa(i + 1)
		}
		authors[i] = *a
	}
	return authors, nil
}

func (c *Client) Health(ctx context.Context) error {
	if _, err := c.send(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, term string, limit int) ([]blog.Post, error) {
	list, err := c.ListPosts(ctx, ListParams{Status: StatusPublished, Search: term, Limit: limit})
	if err != nil {
		return nil, err
	}
	return list.Posts, nil
}

// Categories lists the distinct categories of published posts.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	list, err := c.ListPosts(ctx, ListParams{Status: StatusPublished, Limit: aggregateLimit})
	if err != nil {
		return nil, err
	}
	var categories []string
	for _, p := range list.Posts {
		categories = append(categories, p.Category)
	}
	return uniqueSorted(categories), nil
}

// Tags lists the distinct tags of published posts.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	list, err := c.ListPosts(ctx, ListParams{Status: StatusPublished, Limit: aggregateLimit})
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, p := range list.Posts {
		tags = append(tags, p.Tags...)
	}
	return uniqueSorted(tags), nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
