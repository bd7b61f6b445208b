package audio

import (
	"math"
	"testing"
)

func TestNewRecorderAndClose(t *testing.T) {
	r, err := NewRecorder(16000, 1)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if r.sampleRate != 16000 {
		t.Errorf("sampleRate = %d, want 16000", r.sampleRate)
	}
	if r.channels != 1 {
		t.Errorf("channels = %d, want 1", r.channels)
	}
}

func TestRecorderNotRecordingByDefault(t *testing.T) {
	r, err := NewRecorder(16000, 1)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	defer r.Close()

	if r.IsRecording() {
		t.Error("IsRecording() should be false after creation")
	}
}

func TestStopWithoutStart(t *testing.T) {
	r, err := NewRecorder(16000, 1)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	defer r.Close()

	clip := r.Stop()
	if clip != nil {
		t.Errorf("Stop() without Start() should return nil, got %d samples", len(clip.Samples))
	}
}

func TestBytesToFloat32(t *testing.T) {
	// Test with known float32 value: 1.0 = 0x3F800000
	data := []byte{0x00, 0x00, 0x80, 0x3F} // 1.0 in little-endian float32
	samples := bytesToFloat32(data, 1)

	if len(samples) != 1 {
		t.Fatalf("bytesToFloat32() returned %d samples, want 1", len(samples))
	}
	if samples[0] != 1.0 {
		t.Errorf("bytesToFloat32() = %f, want 1.0", samples[0])
	}
}

func TestBytesToFloat32Multiple(t *testing.T) {
	// Two samples: 0.0 and -1.0
	// 0.0 = 0x00000000, -1.0 = 0xBF800000
	data := []byte{
		0x00, 0x00, 0x00, 0x00, // 0.0
		0x00, 0x00, 0x80, 0xBF, // -1.0
	}
	samples := bytesToFloat32(data, 2)

	if len(samples) != 2 {
		t.Fatalf("bytesToFloat32() returned %d samples, want 2", len(samples))
	}
	if samples[0] != 0.0 {
		t.Errorf("samples[0] = %f, want 0.0", samples[0])
	}
	if samples[1] != -1.0 {
		t.Errorf("samples[1] = %f, want -1.0", samples[1])
	}
}

func TestDownmixMono(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out := downmix(in, 1)

	if len(out) != 3 {
		t.Fatalf("downmix() returned %d samples, want 3", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %g, want %g", i, out[i], in[i])
		}
	}

	// Must be a copy, not an alias.
	out[0] = 9
	if in[0] != 0.1 {
		t.Error("downmix() should copy mono input")
	}
}

func TestDownmixStereo(t *testing.T) {
	in := []float32{0, 1, 1, 0, 0.5, 0.5}
	out := downmix(in, 2)

	want := []float32{0.5, 0.5, 0.5}
	if len(out) != len(want) {
		t.Fatalf("downmix() returned %d samples, want %d", len(out), len(want))
	}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-7 {
			t.Errorf("out[%d] = %g, want %g", i, out[i], want[i])
		}
	}
}

func TestDownmixDropsPartialFrame(t *testing.T) {
	in := []float32{0.2, 0.4, 0.6}
	out := downmix(in, 2)

	if len(out) != 1 {
		t.Fatalf("downmix() returned %d samples, want 1", len(out))
	}
}
