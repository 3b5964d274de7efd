package cli

import "casex/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers     int
	TestPath    string
	NameFilter  string
	CaseFilter  string
	TestCases   bool
	FailFast    bool
	OnlyFailed  bool
	Lazy        bool
	Store       string
	MetricsAddr string
	OpenFaills  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:     f.Workers,
		TestPath:    f.TestPath,
		NameFilter:  f.NameFilter,
		CaseFilter:  f.CaseFilter,
		TestCases:   f.TestCases,
		FailFast:    f.FailFast,
		OnlyFailed:  f.OnlyFailed,
		Lazy:        f.Lazy,
		Store:       f.Store,
		MetricsAddr: f.MetricsAddr,
		OpenFaills:  f.OpenFaills,
	}
}
