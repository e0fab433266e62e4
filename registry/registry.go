package registry

import (
	"reflect"
	"sort"
	"sync"

	"document-composer/descriptor"
)

// Registry is a process-wide mapping from serializer names and domain
// types to descriptors. Reads vastly outnumber writes: registration
// happens during setup, lookups on every serialization.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*descriptor.Descriptor
	byType map[reflect.Type]*descriptor.Descriptor
}

// Entry is a single (name, descriptor) association in a Registry snapshot.
type Entry struct {
	// Name the descriptor is registered under.
	Name string
	// Descriptor is the registered descriptor.
	Descriptor *descriptor.Descriptor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*descriptor.Descriptor),
		byType: make(map[reflect.Type]*descriptor.Descriptor),
	}
}

// RegisterName associates a serializer name with a descriptor.
// Re-registration overwrites; last write wins.
func (r *Registry) RegisterName(name string, d *descriptor.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[name] = d
}

// RegisterType associates a domain type, given by sample value, with a
// descriptor. Pointer indirection is applied, so a *Post sample registers
// the Post type. The descriptor is also registered under its own name and
// under the bare type name for convention lookup.
func (r *Registry) RegisterType(sample any, d *descriptor.Descriptor) {
	t := indirectType(sample)
	if t == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType[t] = d

	if d.Name != "" {
		r.byName[d.Name] = d
	}

	if t.Name() != "" {
		r.byName[t.Name()] = d
	}
}

// ByName returns the descriptor registered under the given name.
func (r *Registry) ByName(name string) (*descriptor.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[name]

	return d, ok
}

// ForValue returns the descriptor registered for the value's concrete
// type, with pointer indirection applied.
func (r *Registry) ForValue(v any) (*descriptor.Descriptor, bool) {
	t := indirectType(v)
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byType[t]

	return d, ok
}

// Infer derives a descriptor for a value by naming convention: first
// "<TypeName>Serializer", then the bare type name.
func (r *Registry) Infer(v any) (*descriptor.Descriptor, bool) {
	name := TypeName(v)
	if name == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.byName[name+"Serializer"]; ok {
		return d, true
	}

	if d, ok := r.byName[name]; ok {
		return d, true
	}

	return nil, false
}

// Entries returns a name-sorted snapshot for diagnostics and docs.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.byName))
	for name, d := range r.byName {
		entries = append(entries, Entry{Name: name, Descriptor: d})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries
}

// Count returns the number of registered names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byName)
}

// Load registers every descriptor of a built definition file under its
// name. Definitions carrying a domain type register that type too.
func (r *Registry) Load(f *descriptor.File) error {
	built, err := f.Build()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, d := range built {
		r.byName[name] = d
	}

	for _, def := range f.Serializers {
		if def.Type == "" {
			continue
		}

		// Type names from YAML have no reflect.Type to key on; register the
		// bare name so convention and polymorphic-by-name lookup find them.
		if d, ok := built[def.Name]; ok {
			r.byName[def.Type] = d
		}
	}

	return nil
}

func indirectType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}
