package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectIDGeneratorRanges(t *testing.T) {
	gen := NewObjectIDGenerator()

	p := gen.NextPlayerID()
	s := gen.NextShapeID()

	assert.Equal(t, uint32(0x10000001), p)
	assert.False(t, IsShapeID(p))
	assert.True(t, IsShapeID(s))
	assert.False(t, IsShapeID(0))
}

func TestObjectIDGeneratorUnique(t *testing.T) {
	gen := NewObjectIDGenerator()

	var mu sync.Mutex
	seen := make(map[uint32]bool)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := gen.NextShapeID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}
