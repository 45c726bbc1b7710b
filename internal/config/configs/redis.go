package configs

import "time"

// Redis configures the optional selection cache. An empty Addr disables
// caching entirely and the service reads straight from PostgreSQL.
type Redis struct {
	// Addr is the host:port of the Redis server. Empty means no cache.
	Addr string `env:"ADDR" envDefault:""`
	// Password for the Redis server, empty when auth is disabled.
	Password string `env:"PASSWORD" envDefault:""`
	// DB selects the Redis logical database.
	DB int `env:"DB" envDefault:"0"`
	// CacheTTL bounds the staleness of cached selections. The same
	// duration is advertised to shared HTTP caches via Cache-Control.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"2m"`
}

// Enabled reports whether a cache server is configured.
func (c Redis) Enabled() bool {
	return c.Addr != ""
}
