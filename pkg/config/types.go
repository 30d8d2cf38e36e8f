package config

// ServerOptions configures the mock server.
type ServerOptions struct {
	// DataDir is the fixture root. Empty means the loader default ("data").
	DataDir string `json:"dataDir,omitempty" yaml:"dataDir,omitempty"`
	// Middlewares names the middlewares to install, in order.
	Middlewares []string `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
	// Pagination configures list pagination. Nil disables it.
	Pagination *PaginationProperties `json:"pagination,omitempty" yaml:"pagination,omitempty"`
	// Proxies forwards matching requests to another server.
	Proxies []Proxy `json:"proxies" yaml:"proxies"`
	// Throttlings delays matching responses.
	Throttlings []Throttling `json:"throttlings" yaml:"throttlings"`
	// Overrides rewrites request methods before routing.
	Overrides []MethodOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// PaginationProperties names the query parameters used for paging.
type PaginationProperties struct {
	// PageParam is the 1-based page query parameter (default "_page").
	PageParam string `json:"pageParam,omitempty" yaml:"pageParam,omitempty"`
	// LimitParam is the page size query parameter (default "_limit").
	LimitParam string `json:"limitParam,omitempty" yaml:"limitParam,omitempty"`
	// DefaultLimit applies when the request has no limit (default 10).
	DefaultLimit int `json:"defaultLimit,omitempty" yaml:"defaultLimit,omitempty"`
	// MaxLimit caps the page size. 0 means no cap.
	MaxLimit int `json:"maxLimit,omitempty" yaml:"maxLimit,omitempty"`
}

// Throttling delays responses for matching requests by a random duration
// between MinDelay and MaxDelay milliseconds.
type Throttling struct {
	// Method restricts the rule to one HTTP method. Empty matches all.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Path is a doublestar pattern.
	Path     string `json:"path" yaml:"path"`
	MinDelay int    `json:"minDelay" yaml:"minDelay"`
	MaxDelay int    `json:"maxDelay" yaml:"maxDelay"`
}

// MethodOverride handles requests to Path sent with method From as if
// they had been sent with method To.
type MethodOverride struct {
	Path string `json:"path" yaml:"path"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Pagination defaults.
const (
	DefaultPageParam    = "_page"
	DefaultLimitParam   = "_limit"
	DefaultPageSize     = 10
	DefaultFixturesFile = "fixtures.yaml"
)

// DefaultServerOptions returns options with pagination enabled and no
// proxies, throttlings or overrides.
func DefaultServerOptions() *ServerOptions {
	return &ServerOptions{
		DataDir:     "data",
		Pagination:  DefaultPagination(),
		Proxies:     []Proxy{},
		Throttlings: []Throttling{},
	}
}

// DefaultPagination returns the default pagination properties.
func DefaultPagination() *PaginationProperties {
	return &PaginationProperties{
		PageParam:    DefaultPageParam,
		LimitParam:   DefaultLimitParam,
		DefaultLimit: DefaultPageSize,
	}
}

// applyDefaults fills unset pagination parameters and nil lists.
func (o *ServerOptions) applyDefaults() {
	if o.Proxies == nil {
		o.Proxies = []Proxy{}
	}
	if o.Throttlings == nil {
		o.Throttlings = []Throttling{}
	}
	if p := o.Pagination; p != nil {
		if p.PageParam == "" {
			p.PageParam = DefaultPageParam
		}
		if p.LimitParam == "" {
			p.LimitParam = DefaultLimitParam
		}
		if p.DefaultLimit == 0 {
			p.DefaultLimit = DefaultPageSize
		}
	}
}
