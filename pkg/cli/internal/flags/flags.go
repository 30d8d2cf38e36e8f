// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/getmockd/fixtures/pkg/cli/internal/parse"
)

// StringSlice is a repeatable string flag. Unlike pflag's StringSlice it
// does not split values on commas.
type StringSlice []string

func (s *StringSlice) String() string { return strings.Join(*s, ",") }

func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (s *StringSlice) Type() string { return "stringSlice" }

// Pair is one <key>=<value> flag value.
type Pair struct {
	Key   string
	Value string
}

// Pairs is a repeatable <key>=<value> flag. Malformed values are rejected
// while flags are parsed.
type Pairs []Pair

func (p *Pairs) String() string {
	parts := make([]string, len(*p))
	for i, pair := range *p {
		parts[i] = pair.Key + "=" + pair.Value
	}
	return strings.Join(parts, ",")
}

func (p *Pairs) Set(value string) error {
	key, val, ok := parse.KeyValue(value, '=')
	if !ok || key == "" {
		return fmt.Errorf("expected <key>=<value>, got %q", value)
	}
	*p = append(*p, Pair{Key: key, Value: val})
	return nil
}

func (p *Pairs) Type() string { return "key=value" }
