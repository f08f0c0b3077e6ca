//go:build darwin

package sources

func registerPlatform(r *Registry, opts Options) {
	r.Register(NewNetstatSource())
	r.Register(NewPsutilSource())
}
