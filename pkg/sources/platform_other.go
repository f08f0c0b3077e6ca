//go:build !linux && !darwin

package sources

func registerPlatform(r *Registry, opts Options) {
	r.Register(NewPsutilSource())
}
