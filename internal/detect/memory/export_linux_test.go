package memory

// WithRoot overrides the default root directory of the system.
func WithRoot(root string) Options {
	return func(o *options) {
		o.root = root
	}
}
