package searchengine

import "github.com/katalvlaran/btorfalsify/sampler"

// Option configures an Engine, following the teacher's functional-options
// shape (builder/config.go, dijkstra/options.go): a defaulted config
// struct, each Option mutating it in turn, applied once at New (no
// validation is performed).
type Option func(*config)

type config struct {
	smallK      uint64
	largeK      uint64
	largeKProb  float64
	maxCycles   uint64 // 0 => unbounded
	samplerOpts []sampler.Option
}

func newConfig(opts ...Option) config {
	cfg := config{
		smallK:     50,
		largeK:     1000,
		largeKProb: 0,
		maxCycles:  0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSmallK overrides the short-episode upper bound (spec §4.F default 50).
func WithSmallK(k uint64) Option {
	return func(cfg *config) { cfg.smallK = k }
}

// WithLargeK overrides the long-episode upper bound (spec §4.F default 1000).
func WithLargeK(k uint64) Option {
	return func(cfg *config) { cfg.largeK = k }
}

// WithLargeKProb overrides the probability of drawing a long episode (spec
// §4.F default ~0).
func WithLargeKProb(p float64) Option {
	return func(cfg *config) { cfg.largeKProb = p }
}

// WithMaxCycles bounds the total number of simulator steps this Engine will
// run across all episodes before returning Unknown (spec §4.F step 4.f,
// §4.H "max_cycles, if set, is divided (ceiling) across workers").
// 0 (the default) means unbounded.
func WithMaxCycles(n uint64) Option {
	return func(cfg *config) { cfg.maxCycles = n }
}

// WithSamplerOptions forwards options to every sampler.RejectCluster call
// (e.g. sampler.WithMaxRejections), see spec §9's documented limitation
// about unbounded rejection loops.
func WithSamplerOptions(opts ...sampler.Option) Option {
	return func(cfg *config) { cfg.samplerOpts = append(cfg.samplerOpts, opts...) }
}
