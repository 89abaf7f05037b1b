package mux

import "time"

// Default tunables for the cluster boundary policy, and the fixed wire
// constant TimecodeScale must carry.
const (
	DefaultClusterSizeLimit = 5 * 1024 * 1024 // 5 MiB
	DefaultClusterDuration  = 5 * time.Second

	// TimecodeScaleNs is nanoseconds per Matroska tick. Fixed at one
	// million, so ticks are milliseconds — this is never configurable.
	TimecodeScaleNs = 1_000_000
)

// Config holds the muxer's tunables: a plain struct with sane defaults,
// built through functional options — there is no daemon here to
// justify an external config file format.
type Config struct {
	ClusterSizeLimit int
	ClusterDuration  time.Duration
	MuxingApp        string
	WritingApp       string
	Title            string
}

// Option configures a Config constructed via NewConfig.
type Option func(*Config)

// WithClusterSizeLimit overrides the running-bytes cap that forces a
// new cluster (default 5 MiB).
func WithClusterSizeLimit(n int) Option {
	return func(c *Config) { c.ClusterSizeLimit = n }
}

// WithClusterDuration overrides the elapsed-time cap that forces a new
// cluster (default 5s of accumulated timestamp span).
func WithClusterDuration(d time.Duration) Option {
	return func(c *Config) { c.ClusterDuration = d }
}

// WithMuxingApp sets the Info/MuxingApp string.
func WithMuxingApp(app string) Option {
	return func(c *Config) { c.MuxingApp = app }
}

// WithWritingApp sets the Info/WritingApp string.
func WithWritingApp(app string) Option {
	return func(c *Config) { c.WritingApp = app }
}

// WithTitle sets the optional Info/Title string.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// NewConfig builds a Config from the package defaults (5 MiB, 5 s,
// "go-webm-stream" app names, no title) plus opts.
func NewConfig(opts ...Option) Config {
	c := Config{
		ClusterSizeLimit: DefaultClusterSizeLimit,
		ClusterDuration:  DefaultClusterDuration,
		MuxingApp:        "go-webm-stream",
		WritingApp:       "go-webm-stream",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
