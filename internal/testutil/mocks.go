package testutil

import (
	"errors"
	"sync"

	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/spawn"
)

// ErrSimulated is a sentinel error for testing error handling paths
var ErrSimulated = errors.New("simulated error for testing")

// MockFactory — in-memory ObjectFactory для unit тестов.
// FailCreateAt / FailRegisterAt make the N-th call (1-based) return ErrSimulated.
type MockFactory struct {
	FailCreateAt   int
	FailRegisterAt int

	mu         sync.Mutex
	next       spawn.Handle
	creates    int
	registers  int
	shapes     map[spawn.Handle]model.StaticShape
	registered []model.StaticShape
}

// NewMockFactory создаёт новый MockFactory.
func NewMockFactory() *MockFactory {
	return &MockFactory{
		shapes: make(map[spawn.Handle]model.StaticShape),
	}
}

// Create implements spawn.ObjectFactory.
func (f *MockFactory) Create(shape model.StaticShape) (spawn.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.creates == f.FailCreateAt {
		return 0, ErrSimulated
	}
	f.next++
	f.shapes[f.next] = shape
	return f.next, nil
}

// Register implements spawn.ObjectFactory.
func (f *MockFactory) Register(h spawn.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.registers++
	if f.registers == f.FailRegisterAt {
		return ErrSimulated
	}
	f.registered = append(f.registered, f.shapes[h])
	return nil
}

// Registered returns registered shapes in order.
func (f *MockFactory) Registered() []model.StaticShape {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.StaticShape(nil), f.registered...)
}

// MockPresenter records HUD text per player.
type MockPresenter struct {
	mu      sync.Mutex
	texts   map[string]string
	history []string
}

// NewMockPresenter создаёт новый MockPresenter.
func NewMockPresenter() *MockPresenter {
	return &MockPresenter{texts: make(map[string]string)}
}

// SetText implements combat.UIPresenter.
func (p *MockPresenter) SetText(playerName, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts[playerName] = text
	p.history = append(p.history, playerName+"="+text)
}

// Text returns the last text pushed for a player.
func (p *MockPresenter) Text(playerName string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.texts[playerName]
	return t, ok
}

// History returns every push as "name=text".
func (p *MockPresenter) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}
