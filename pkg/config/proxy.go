package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Proxy forwards requests whose path matches Path to Target.
type Proxy struct {
	// Path is a doublestar pattern ("/api/payments/**").
	Path string `json:"path" yaml:"path"`
	// Target is the absolute http(s) URL of the upstream server.
	Target string `json:"target" yaml:"target"`
	// PathRewrite maps path prefixes to their replacement upstream.
	PathRewrite map[string]string `json:"pathRewrite,omitempty" yaml:"pathRewrite,omitempty"`
	// ChangeOrigin sets the Host header to the target host.
	ChangeOrigin bool `json:"changeOrigin,omitempty" yaml:"changeOrigin,omitempty"`
}

// Validate checks the proxy definition. field prefixes error fields.
func (p *Proxy) Validate(field string) error {
	if err := validatePattern(field+".path", p.Path); err != nil {
		return err
	}

	if p.Target == "" {
		return &ValidationError{Field: field + ".target", Message: "target is required"}
	}
	u, err := url.Parse(p.Target)
	if err != nil {
		return &ValidationError{Field: field + ".target", Message: "invalid URL: " + err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{
			Field:   field + ".target",
			Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
		}
	}
	if u.Host == "" {
		return &ValidationError{Field: field + ".target", Message: "target must include a host"}
	}

	for from := range p.PathRewrite {
		if !strings.HasPrefix(from, "/") {
			return &ValidationError{
				Field:   fmt.Sprintf("%s.pathRewrite[%s]", field, from),
				Message: "rewrite prefix must start with /",
			}
		}
	}
	return nil
}
