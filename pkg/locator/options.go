package locator

type Option func(l *Locator)

func WithEnumerator(enum Enumerator) Option {
	return func(l *Locator) {
		l.enum = enum
	}
}

// WithIdentity overrides the USB vendor/product pair to look for.
func WithIdentity(vid, pid uint16) Option {
	return func(l *Locator) {
		l.vid = vid
		l.pid = pid
	}
}
