package proxy

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

	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"
	"github.com/kgzivf/blogbackend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxProxyBodyBytes = 10 << 20

// setProxyCORS opens the proxy to any origin; the anon key it injects is
// public by nature.
func setProxyCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, apikey, Prefer")
}

// targetURL resolves the upstream URL from the path parameter, which may
// carry its own query string, merged with the remaining request parameters.
func targetURL(base string, r *http.Request) (string, error) {
	params := r.URL.Query()
	path := params.Get("path")
	params.Del("path")

	merged := url.Values{}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		pathQuery, err := url.ParseQuery(path[i+1:])
		if err != nil {
			return "", fmt.Errorf("parse path query: %w", err)
		}
		merged = pathQuery
		path = path[:i]
	}
	for k, vs := range params {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}

	target := base + "/rest/v1/" + strings.TrimLeft(path, "/")
	if len(merged) > 0 {
		target += "?" + merged.Encode()
	}
	return target, nil
}

func writeProxyFailure(w http.ResponseWriter, err error) {
	pkg.WriteJSON(w, map[string]string{
		"error":     "proxy request failed",
		"details":   err.Error(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusInternalServerError)
}

func (h *Handler) handleSupabaseProxy(w http.ResponseWriter, r *http.Request) {
	setProxyCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.supabase.URL == "" || h.supabase.AnonKey == "" {
		pkg.WriteJSON(w, map[string]string{
			"error":   "Supabase config missing",
			"details": "SUPABASE_URL or SUPABASE_ANON_KEY not set",
		}, http.StatusInternalServerError)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "proxy.supabase")
	defer span.End()

	target, err := targetURL(h.supabase.URL, r)
	if err != nil {
		writeProxyFailure(w, err)
		return
	}
	span.SetAttributes(attribute.String("target", target), attribute.String("method", r.Method))
	log.Debugf("supabase proxy: %s %s", r.Method, target)

	status, contentType, body, err := h.forward(ctx, r, target)
	if err != nil {
		tracing.EndSpanWithErrCheck(span, err)
		log.Errorf("supabase proxy %s %s: %s", r.Method, target, err)
		writeProxyFailure(w, err)
		return
	}

	if len(body) == 0 {
		w.WriteHeader(status)
		return
	}
	if !strings.Contains(contentType, "application/json") {
		wrapped, err := json.Marshal(string(body))
		if err != nil {
			writeProxyFailure(w, err)
			return
		}
		body = wrapped
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, body, status)
}

func (h *Handler) forward(ctx context.Context, r *http.Request, target string) (int, string, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var reqBody io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBodyBytes))
		if err != nil {
			return 0, "", nil, fmt.Errorf("read request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, reqBody)
	if err != nil {
		return 0, "", nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("apikey", h.supabase.AnonKey)
	req.Header.Set("Authorization", "Bearer "+h.supabase.AnonKey)
	if prefer := r.Header.Get("Prefer"); prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyBodyBytes))
	if err != nil {
		return 0, "", nil, fmt.Errorf("read upstream body: %w", err)
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}
