package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for arena entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid handle)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: Static shapes (walls, obstacles)
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextShapeID  atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextShapeID.Store(0x20000000)
	return gen
}

// NextPlayerID generates next unique player object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextShapeID generates next unique static shape object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextShapeID() uint32 {
	return g.nextShapeID.Add(1)
}

// IsShapeID reports whether id belongs to the static shape range.
func IsShapeID(id uint32) bool {
	return id >= 0x20000000 && id < 0x30000000
}
