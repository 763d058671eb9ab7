package ai

// Controller drives one player between think steps.
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// Tick performs one AI step (called every round tick)
	Tick()
}
