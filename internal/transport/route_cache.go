package transport

import (
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	routeCacheSize = 512 * 1024 // freecache minimum
	routeCacheKey  = "rest::winning-route"
)

// routeCache remembers the route that served the last successful request,
// so the next request skips routes known to be failing. A nil cache is
// disabled.
type routeCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func newRouteCache(ttl time.Duration) *routeCache {
	if ttl <= 0 {
		return nil
	}
	expire := int(ttl.Seconds())
	if expire < 1 {
		expire = 1
	}
	return &routeCache{
		cache:         freecache.NewCache(routeCacheSize),
		expireSeconds: expire,
	}
}

func (c *routeCache) get() (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.cache.Get([]byte(routeCacheKey))
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (c *routeCache) set(routeName string) {
	if c == nil {
		return
	}
	if err := c.cache.Set([]byte(routeCacheKey), []byte(routeName), c.expireSeconds); err != nil {
		log.Warnf("cache winning route %s: %s", routeName, err)
	}
}

func (c *routeCache) forget(routeName string) {
	if c == nil {
		return
	}
	if cached, ok := c.get(); ok && cached == routeName {
		c.cache.Del([]byte(routeCacheKey))
	}
}

// order moves the cached winner to the front, keeping the rest in order.
func (c *routeCache) order(routes []Route) []Route {
	winner, ok := c.get()
	if !ok || len(routes) < 2 || routes[0].Name == winner {
		return routes
	}
	ordered := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Name == winner {
			ordered = append(ordered, r)
		}
	}
	if len(ordered) == 0 {
		return routes
	}
	for _, r := range routes {
		if r.Name != winner {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
