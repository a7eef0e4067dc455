// Package repository stores snapshot revisions handed over by the sync layer.
package repository

// defaultHistorySize bounds retained revisions unless overridden.
const defaultHistorySize = 20

type options struct {
	historySize int
}

// Option applies a configuration option to a store.
type Option func(*options)

// WithHistorySize sets how many revisions are retained. Values <= 0 keep the default.
func WithHistorySize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historySize = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{historySize: defaultHistorySize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
