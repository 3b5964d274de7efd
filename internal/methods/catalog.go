// Package methods holds the method catalogs fixture files can expand
// against.
package methods

import (
	"errors"
	"fmt"
	"sort"

	"casex/internal/suite"
)

// ErrUnknownCatalog is returned by Lookup for names with no catalog.
var ErrUnknownCatalog = errors.New("unknown method catalog")

var catalogs = map[string]func() *suite.Registry{
	"concat": Concat,
}

// Lookup returns a fresh registry for the named catalog.
func Lookup(name string) (*suite.Registry, error) {
	build, ok := catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownCatalog, name, Names())
	}
	return build(), nil
}

// Names returns catalog names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
