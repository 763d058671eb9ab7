package spawn

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

// Handle identifies an object created by the host.
type Handle uint32

// ObjectFactory creates and activates static objects in the host scene.
type ObjectFactory interface {
	// Create builds an object from shape and returns its handle.
	Create(shape model.StaticShape) (Handle, error)
	// Register activates a created object in the scene.
	Register(h Handle) error
}

// Clearer is implemented by factories that can drop every object at once,
// so a round can rebuild its arena.
type Clearer interface {
	Clear()
}

// Registry is an in-memory ObjectFactory used when the arena runs headless.
// Registered shapes are served to spectators through Shapes.
type Registry struct {
	ids *world.ObjectIDGenerator

	mu         sync.RWMutex
	created    map[Handle]model.StaticShape
	registered []Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids:     world.NewObjectIDGenerator(),
		created: make(map[Handle]model.StaticShape),
	}
}

// Create stores shape and assigns a handle from the static shape ID range.
func (r *Registry) Create(shape model.StaticShape) (Handle, error) {
	h := Handle(r.ids.NextShapeID())

	r.mu.Lock()
	r.created[h] = shape
	r.mu.Unlock()

	return h, nil
}

// Register activates a created handle. Registering twice is an error.
func (r *Registry) Register(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !world.IsShapeID(uint32(h)) {
		return fmt.Errorf("registering object %d: not a shape handle", h)
	}
	if _, ok := r.created[h]; !ok {
		return fmt.Errorf("registering object %d: not created", h)
	}
	for _, existing := range r.registered {
		if existing == h {
			return fmt.Errorf("registering object %d: already registered", h)
		}
	}
	r.registered = append(r.registered, h)

	slog.Debug("object registered", "handle", h, "shape", r.created[h].ShapeName)
	return nil
}

// Shapes returns registered shapes in registration order.
func (r *Registry) Shapes() []model.StaticShape {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.StaticShape, 0, len(r.registered))
	for _, h := range r.registered {
		out = append(out, r.created[h])
	}
	return out
}

// Count returns number of registered objects.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registered)
}

// Clear drops every object. Used between rounds.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.created)
	r.registered = r.registered[:0]
}
