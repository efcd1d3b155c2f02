package lp

// Config bundles the tunables SCIPlpSolve/the aging policy consult
// (spec.md §4.4, §4.6, §6), configured through functional options in
// the style consistent across ciplp's packages.
type Config struct {
	colAgeLimit int
	rowAgeLimit int

	feasTolTighten float64 // multiplier applied on stability-ladder step 3
	strongBranchIterLimit int
}

// Option customizes a Config before it is handed to New.
type Option func(*Config)

// WithColAgeLimit sets the age threshold past which an obsolete column
// (primsol == 0, best bound == 0) becomes eligible for removal.
func WithColAgeLimit(n int) Option {
	return func(c *Config) { c.colAgeLimit = n }
}

// WithRowAgeLimit sets the age threshold past which a strictly-interior
// row becomes eligible for removal.
func WithRowAgeLimit(n int) Option {
	return func(c *Config) { c.rowAgeLimit = n }
}

// WithFeasTolTighten sets the multiplier the stability ladder applies
// to feasTol on its third rung (spec.md §4.6).
func WithFeasTolTighten(mult float64) Option {
	return func(c *Config) { c.feasTolTighten = mult }
}

// WithStrongBranchIterLimit sets the default iteration limit passed to
// StrongBranch when the caller does not specify one.
func WithStrongBranchIterLimit(n int) Option {
	return func(c *Config) { c.strongBranchIterLimit = n }
}

// NewConfig builds a Config from package defaults plus opts, applied in
// order (later options win).
func NewConfig(opts ...Option) *Config {
	c := &Config{
		colAgeLimit:           10,
		rowAgeLimit:           10,
		feasTolTighten:        1e-3,
		strongBranchIterLimit: 100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
