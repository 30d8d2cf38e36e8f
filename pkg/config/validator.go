package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError reports an invalid option.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// validHTTPMethods are the methods throttlings and overrides may name.
var validHTTPMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
}

func validatePattern(field, pattern string) error {
	if pattern == "" {
		return &ValidationError{Field: field, Message: "path is required"}
	}
	if !strings.HasPrefix(pattern, "/") && !strings.HasPrefix(pattern, "*") {
		return &ValidationError{Field: field, Message: "path must start with / or *"}
	}
	if !doublestar.ValidatePattern(pattern) {
		return &ValidationError{Field: field, Message: "invalid path pattern: " + pattern}
	}
	return nil
}

func validateMethod(field, method string) error {
	if !validHTTPMethods[method] {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown HTTP method %q", method)}
	}
	return nil
}

// Validate checks every option and returns the first problem found.
func (o *ServerOptions) Validate() error {
	for i, name := range o.Middlewares {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("middlewares[%d]", i),
				Message: "middleware name cannot be empty",
			}
		}
	}

	if o.Pagination != nil {
		if err := o.Pagination.Validate(); err != nil {
			return err
		}
	}

	for i := range o.Proxies {
		if err := o.Proxies[i].Validate(fmt.Sprintf("proxies[%d]", i)); err != nil {
			return err
		}
	}

	for i := range o.Throttlings {
		if err := o.Throttlings[i].Validate(fmt.Sprintf("throttlings[%d]", i)); err != nil {
			return err
		}
	}

	for i := range o.Overrides {
		if err := o.Overrides[i].Validate(fmt.Sprintf("overrides[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the pagination properties.
func (p *PaginationProperties) Validate() error {
	if p.DefaultLimit < 0 {
		return &ValidationError{Field: "pagination.defaultLimit", Message: "defaultLimit must be >= 0"}
	}
	if p.MaxLimit < 0 {
		return &ValidationError{Field: "pagination.maxLimit", Message: "maxLimit must be >= 0"}
	}
	if p.MaxLimit > 0 && p.DefaultLimit > p.MaxLimit {
		return &ValidationError{
			Field:   "pagination.defaultLimit",
			Message: fmt.Sprintf("defaultLimit %d exceeds maxLimit %d", p.DefaultLimit, p.MaxLimit),
		}
	}
	if p.PageParam != "" && p.PageParam == p.LimitParam {
		return &ValidationError{Field: "pagination", Message: "pageParam and limitParam must differ"}
	}
	return nil
}

// Validate checks the throttling rule. field prefixes error fields.
func (t *Throttling) Validate(field string) error {
	if err := validatePattern(field+".path", t.Path); err != nil {
		return err
	}
	if t.Method != "" {
		if err := validateMethod(field+".method", t.Method); err != nil {
			return err
		}
	}
	if t.MinDelay < 0 {
		return &ValidationError{Field: field + ".minDelay", Message: "minDelay must be >= 0"}
	}
	if t.MaxDelay < t.MinDelay {
		return &ValidationError{
			Field:   field + ".maxDelay",
			Message: fmt.Sprintf("maxDelay %d is less than minDelay %d", t.MaxDelay, t.MinDelay),
		}
	}
	return nil
}

// Validate checks the override. field prefixes error fields.
func (m *MethodOverride) Validate(field string) error {
	if err := validatePattern(field+".path", m.Path); err != nil {
		return err
	}
	if err := validateMethod(field+".from", m.From); err != nil {
		return err
	}
	if err := validateMethod(field+".to", m.To); err != nil {
		return err
	}
	if m.From == m.To {
		return &ValidationError{Field: field, Message: "from and to are the same method"}
	}
	return nil
}
