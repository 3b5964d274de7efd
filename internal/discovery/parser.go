package discovery

import (
	"fmt"

	"casex/internal/methods"
	"casex/internal/params"
	"casex/internal/suite"
)

// Parser turns fixture files into expanded suites
type Parser struct {
	lookup func(catalog string) (*suite.Registry, error)
}

// NewParser creates a new Parser backed by the built-in method catalogs
func NewParser() *Parser {
	return &Parser{lookup: methods.Lookup}
}

// ParseSuite loads a fixture file and expands it against its catalog. With
// validate set, parameter sets that do not satisfy a method's requirements
// fail here instead of when the case runs.
func (p *Parser) ParseSuite(filePath string, validate bool) (*suite.Suite, error) {
	doc, err := params.LoadFile(filePath)
	if err != nil {
		return nil, err
	}

	registry, err := p.lookup(doc.Catalog)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", filePath, err)
	}

	opts := []suite.Option{suite.WithSource(filePath)}
	if validate {
		opts = append(opts, suite.WithValidation())
	}
	return suite.BuildSuite(doc.Suite, doc.Sets, registry, opts...)
}

// FindTestCases returns the expanded case names of a fixture file, in suite order
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	s, err := p.ParseSuite(filePath, false)
	if err != nil {
		return nil, err
	}
	return s.Names(), nil
}
