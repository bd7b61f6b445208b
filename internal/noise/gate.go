// Package noise implements a simple amplitude gate for cleaning up
// captured audio before it enters the conversion pipeline.
package noise

// Gate attenuates buffers whose mean absolute amplitude falls below a
// threshold. Buffers above the threshold pass through unchanged.
type Gate struct {
	// Threshold is the mean-absolute amplitude above which a buffer
	// counts as voice activity.
	Threshold float64
	// Floor scales inactive buffers instead of zeroing them, which
	// avoids hard clicks at gate boundaries.
	Floor float64
}

// NewGate returns a Gate with the given threshold and floor.
func NewGate(threshold, floor float64) *Gate {
	return &Gate{Threshold: threshold, Floor: floor}
}

// Process applies the gate to a buffer of samples. It returns a new
// slice and whether the buffer counted as voice activity. The input is
// not modified. An empty buffer is inactive.
func (g *Gate) Process(samples []float32) ([]float32, bool) {
	out := make([]float32, len(samples))
	if len(samples) == 0 {
		return out, false
	}

	var sum float64
	for _, s := range samples {
		if s < 0 {
			sum -= float64(s)
		} else {
			sum += float64(s)
		}
	}
	power := sum / float64(len(samples))

	if power > g.Threshold {
		copy(out, samples)
		return out, true
	}

	floor := float32(g.Floor)
	for i, s := range samples {
		out[i] = s * floor
	}
	return out, false
}

// ProcessFrames applies the gate to successive fixed-size frames,
// mirroring how capture streams deliver audio. The final frame may be
// shorter. A frameSize of zero or less gates the whole buffer at once.
func (g *Gate) ProcessFrames(samples []float32, frameSize int) []float32 {
	if frameSize <= 0 || frameSize >= len(samples) {
		out, _ := g.Process(samples)
		return out
	}

	out := make([]float32, 0, len(samples))
	for start := 0; start < len(samples); start += frameSize {
		end := start + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		frame, _ := g.Process(samples[start:end])
		out = append(out, frame...)
	}
	return out
}
