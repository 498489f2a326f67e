package sampler

// Option customizes RejectCluster/RejectAllClusters, following the
// teacher's functional-options shape (builder/config.go: a config struct,
// defaults applied first, each Option mutating it in order).
type Option func(*config)

type config struct {
	maxRejections uint64 // 0 => unbounded (the reference design's default)
}

func newConfig(opts ...Option) config {
	cfg := config{maxRejections: 0}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxRejections bounds the number of rejection-sampling attempts per
// cluster before RejectCluster gives up with ErrRejectionLimitExceeded.
// n == 0 means unbounded (the reference design's behavior, spec §4.E/§9).
//
// Spec §9 suggests a bound "on the order of 2^(min(sum_widths, 20))" for
// implementations that want to detect infeasible clusters instead of
// hanging; this repo leaves that choice to the caller since the reference
// design does not implement it by default.
func WithMaxRejections(n uint64) Option {
	return func(cfg *config) { cfg.maxRejections = n }
}
