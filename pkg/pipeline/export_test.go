package pipeline

// DependencySlice exposes an operation's dependency slice so tests can build cycles.
func DependencySlice(o *Operation) *[]Unit {
	return &o.deps
}
