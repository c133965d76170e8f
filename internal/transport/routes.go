package transport

import (
	"net/url"
	"strings"

	"github.com/kgzivf/blogbackend/internal/config"
)

const (
	restPath  = "/rest/v1/"
	proxyPath = "/api/supabase-proxy"
)

type RouteKind string

const (
	RouteProxy  RouteKind = "proxy"
	RouteDirect RouteKind = "direct"
)

// Route is one way of reaching the REST backend.
type Route struct {
	Name    string
	Kind    RouteKind
	BaseURL string
}

// URL builds the request URL for a PostgREST path like "blog_posts?select=*".
// Proxy routes carry the path as the url-encoded "path" parameter.
func (r Route) URL(path string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if r.Kind == RouteProxy {
		return base + proxyPath + "?path=" + url.QueryEscape(path)
	}
	return base + restPath + path
}

// RoutesFor returns the ordered REST routes for a deployment. Routes with the
// same URL are kept once.
func RoutesFor(deployment config.Deployment, rest config.REST) []Route {
	var routes []Route
	add := func(r Route) {
		if r.BaseURL == "" {
			return
		}
		for _, existing := range routes {
			if existing.Kind == r.Kind && strings.TrimRight(existing.BaseURL, "/") == strings.TrimRight(r.BaseURL, "/") {
				return
			}
		}
		routes = append(routes, r)
	}
	proxy := Route{Name: "proxy", Kind: RouteProxy, BaseURL: rest.ProxyURL}

	switch deployment {
	case config.DeploymentServerless:
		add(proxy)
	case config.DeploymentContainer:
		// an https page may not call plain http, so it goes through the
		// proxy and https before the configured url
		if rest.PageHTTPS {
			add(proxy)
			add(Route{Name: "https", Kind: RouteDirect, BaseURL: withScheme(rest.SupabaseURL, "https")})
		}
		add(Route{Name: "direct", Kind: RouteDirect, BaseURL: rest.SupabaseURL})
		if len(routes) == 0 {
			add(proxy)
		}
	default:
		add(Route{Name: "direct", Kind: RouteDirect, BaseURL: rest.SupabaseURL})
		if len(routes) == 0 {
			add(proxy)
		}
	}

	return routes
}

func withScheme(rawURL, scheme string) string {
	switch {
	case rawURL == "":
		return ""
	case strings.HasPrefix(rawURL, "http://"):
		return scheme + "://" + strings.TrimPrefix(rawURL, "http://")
	case strings.HasPrefix(rawURL, "https://"):
		return scheme + "://" + strings.TrimPrefix(rawURL, "https://")
	default:
		return scheme + "://" + rawURL
	}
}
