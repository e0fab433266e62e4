package registry

import "sync"

// The default registry backs the package-level helpers. Extension hooks
// registered with OnLoad run exactly once, before the first lookup, so
// packages can contribute serializers from init functions without
// ordering races against each other.
var (
	defaultRegistry = New()

	hookMu    sync.Mutex
	hooks     []func(*Registry)
	hooksDone bool
)

// OnLoad registers a one-time extension hook against the default registry.
// Hooks registered after the default registry has been used are invoked
// immediately.
func OnLoad(fn func(*Registry)) {
	hookMu.Lock()
	defer hookMu.Unlock()

	if hooksDone {
		fn(defaultRegistry)
		return
	}

	hooks = append(hooks, fn)
}

// Default returns the process-wide registry, running any pending OnLoad
// hooks first.
func Default() *Registry {
	hookMu.Lock()
	defer hookMu.Unlock()

	if !hooksDone {
		for _, fn := range hooks {
			fn(defaultRegistry)
		}

		hooks = nil
		hooksDone = true
	}

	return defaultRegistry
}

