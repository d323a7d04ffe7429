package constants

func WithUserConfigDir(f func() (string, error)) option {
	return func(o *options) {
		o.userConfigDir = f
	}
}

func WithExecutable(f func() (string, error)) option {
	return func(o *options) {
		o.executable = f
	}
}

func WithGOOS(goos string) option {
	return func(o *options) {
		o.goos = goos
	}
}
