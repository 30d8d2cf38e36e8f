package fixture

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Query evaluates a JSONPath expression against decoded fixture content
// and returns every matching value in document order.
func Query(c Content, expr string) ([]any, error) {
	if !c.Structured() {
		return nil, &PathError{Op: "query", Path: c.Path, Kind: ErrNotStructured}
	}

	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, expr, err)
	}
	return x.Get(c.Value), nil
}
