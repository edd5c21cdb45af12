package element

import (
	"slices"
	"sync"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/observability"
)

// catalog is the process-wide element class registry. It is populated once
// at startup (built-in classes register from init, applications may add
// their own before the first solve) and sealed when solving begins; after
// sealing it is read-only and safe to share without locking.
var catalog = struct {
	mu      sync.RWMutex
	classes map[string]Class
	sealed  bool
}{classes: make(map[string]Class)}

// Register adds a class to the catalog.
// It fails with INVALID_CLASS for malformed or duplicate names and with
// CATALOG_SEALED once solving has begun - the catalog has a write-once
// lifecycle and never mutates at runtime.
func Register(c Class) error {
	if err := errors.ValidateClassName(c.Name()); err != nil {
		return err
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if catalog.sealed {
		return errors.New(errors.ErrCodeCatalogSealed, "catalog is sealed; register classes before the first solve")
	}
	if _, dup := catalog.classes[c.Name()]; dup {
		return errors.New(errors.ErrCodeInvalidClass, "class %q already registered", c.Name())
	}
	catalog.classes[c.Name()] = c
	observability.Catalog().OnRegister(c.Name())
	return nil
}

// MustRegister is like Register but panics on error. Built-in classes use
// it from init, where a registration failure is a defect.
func MustRegister(c Class) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the class registered under name.
func Lookup(name string) (Class, bool) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	c, ok := catalog.classes[name]
	return c, ok
}

// Names returns all registered class names in sorted order.
func Names() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	names := make([]string, 0, len(catalog.classes))
	for name := range catalog.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Seal freezes the catalog. The solve orchestrator calls it before the
// first solve; subsequent Register calls fail. Sealing twice is a no-op.
func Seal() {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	catalog.sealed = true
}

// Sealed reports whether the catalog has been sealed.
func Sealed() bool {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return catalog.sealed
}

// Unseal reopens the catalog for registration.
// This is primarily useful for testing registration lifecycles.
func Unseal() {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	catalog.sealed = false
}
