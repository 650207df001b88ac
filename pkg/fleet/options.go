package fleet

type Option func(f *Fleet)

// WithConcurrency talks to up to n devices at once. Devices never share a
// port, so this only changes timing.
func WithConcurrency(n int) Option {
	return func(f *Fleet) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(f *Fleet) {
		f.observer = o
	}
}
