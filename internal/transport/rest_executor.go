package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxResponseBytes = 10 << 20

// RESTExecutor talks PostgREST over HTTP, trying each configured route once
// per call until one answers with a 2xx.
type RESTExecutor struct {
	routes     []Route
	anonKey    string
	httpClient *http.Client
	timeout    time.Duration
	winners    *routeCache
	metrics    *metrics.Manager
}

type NewRESTExecutorParams struct {
	Routes        []Route
	AnonKey       string
	HTTPClient    *http.Client
	Timeout       time.Duration
	RouteCacheTTL time.Duration
	Metrics       *metrics.Manager
}

func NewRESTExecutor(params NewRESTExecutorParams) (*RESTExecutor, error) {
	if len(params.Routes) == 0 {
		return nil, ErrNoRoutes
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTExecutor{
		routes:     params.Routes,
		anonKey:    params.AnonKey,
		httpClient: httpClient,
		timeout:    params.Timeout,
		winners:    newRouteCache(params.RouteCacheTTL),
		metrics:    params.Metrics,
	}, nil
}

func (e *RESTExecutor) Name() string {
	return "rest"
}

func (e *RESTExecutor) Routes() []Route {
	return append([]Route(nil), e.routes...)
}

func (e *RESTExecutor) Select(ctx context.Context, q query.Query) ([]query.Row, error) {
	params, err := query.RenderREST(q)
	if err != nil {
		return nil, err
	}
	return e.do(ctx, "select", http.MethodGet, q.Table+"?"+params.Encode(), nil)
}

func (e *RESTExecutor) Insert(ctx context.Context, table string, values query.Row) ([]query.Row, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}
	return e.do(ctx, "insert", http.MethodPost, table, body)
}

func (e *RESTExecutor) Update(ctx context.Context, table string, values query.Row, where query.Predicate) ([]query.Row, error) {
	filter, err := query.RenderRESTFilter(where)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}
	return e.do(ctx, "update", http.MethodPatch, table+"?"+filter.Encode(), body)
}

func (e *RESTExecutor) Delete(ctx context.Context, table string, where query.Predicate) ([]query.Row, error) {
	filter, err := query.RenderRESTFilter(where)
	if err != nil {
		return nil, err
	}
	return e.do(ctx, "delete", http.MethodDelete, table+"?"+filter.Encode(), nil)
}

func (e *RESTExecutor) do(ctx context.Context, op, method, path string, body []byte) (rows []query.Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "transport.rest."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	e.metrics.CounterQueries.WithLabelValues(e.Name(), op).Inc()

	var lastErr error
	for _, route := range e.winners.order(e.routes) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		rows, err := e.attempt(ctx, route, method, path, body)
		if err == nil {
			e.metrics.CounterTransportAttempts.WithLabelValues(route.Name, "ok").Inc()
			e.winners.set(route.Name)
			span.SetAttributes(attribute.String("rest.route", route.Name))
			return rows, nil
		}

		e.metrics.CounterTransportAttempts.WithLabelValues(route.Name, "error").Inc()
		e.winners.forget(route.Name)
		log.Warnf("rest %s %s via route %s failed: %s", method, path, route.Name, err)
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %w", ErrAllRoutesFailed, lastErr)
}

func (e *RESTExecutor) attempt(ctx context.Context, route Route, method, path string, body []byte) ([]query.Row, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, route.URL(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("route %s: create request: %w", route.Name, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}
	if route.Kind == RouteDirect && e.anonKey != "" {
		req.Header.Set("apikey", e.anonKey)
		req.Header.Set("Authorization", "Bearer "+e.anonKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route %s: network request failed: %w", route.Name, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("route %s: read response: %w", route.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{
			Route:      route.Name,
			StatusCode: resp.StatusCode,
			Body:       string(respBytes),
		}
	}

	rows, err := decodeRows(respBytes)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", route.Name, err)
	}
	return rows, nil
}

// decodeRows accepts a JSON array of rows, a single row object or an empty
// body.
func decodeRows(body []byte) ([]query.Row, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	switch body[0] {
	case '[':
		var rows []query.Row
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return rows, nil
	case '{':
		var row query.Row
		if err := json.Unmarshal(body, &row); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return []query.Row{row}, nil
	case 'n':
		if string(body) == "null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected body %.64q", ErrMalformedResponse, body)
}

// ProbeResult is the outcome of calling a single route.
type ProbeResult struct {
	Route   Route
	Status  int
	Latency time.Duration
	Err     error
}

// Probe calls every route on its own, without falling through, and reports
// how each one answered. path is a PostgREST path like "blog_posts?limit=1".
func (e *RESTExecutor) Probe(ctx context.Context, path string) []ProbeResult {
	results := make([]ProbeResult, 0, len(e.routes))
	for _, route := range e.routes {
		start := time.Now()
		_, err := e.attempt(ctx, route, http.MethodGet, path, nil)
		res := ProbeResult{Route: route, Latency: time.Since(start), Err: err}

		var statusErr *HTTPStatusError
		switch {
		case err == nil:
			res.Status = http.StatusOK
		case errors.As(err, &statusErr):
			res.Status = statusErr.StatusCode
		}
		results = append(results, res)
	}
	return results
}
