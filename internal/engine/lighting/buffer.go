package lighting

// MaxLights is the maximum number of lights a frame can carry.
const MaxLights = 32

// Buffer holds the lights active for one frame.
type Buffer struct {
	Lights []Light
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]Light, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
}

// Add adds a light to the buffer.
// Returns false if buffer is full.
func (b *Buffer) Add(light Light) bool {
	if len(b.Lights) >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxLights if necessary.
func (b *Buffer) SetLights(lights []Light) {
	b.Clear()
	count := min(len(lights), MaxLights)
	b.Lights = append(b.Lights, lights[:count]...)
}

// Len returns the number of lights.
func (b *Buffer) Len() int {
	return len(b.Lights)
}
