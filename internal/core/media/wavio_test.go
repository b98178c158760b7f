package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a PCM16 WAV with arbitrary rate and channel count,
// for building non-canonical fixtures.
func writeTestWAV(t *testing.T, path string, rate, channels int, samples []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	e := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := e.Write(buf); err != nil {
		t.Fatalf("failed to write test WAV: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("failed to finalize test WAV: %v", err)
	}
}

func TestWriteReadCanonicalWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	want := []int{0, 100, -100, 32000, -32000}

	if err := writeCanonicalWAV(path, want); err != nil {
		t.Fatalf("writeCanonicalWAV() error = %v", err)
	}

	samples, rate, channels, err := readWAV(path)
	if err != nil {
		t.Fatalf("readWAV() error = %v", err)
	}
	if rate != CanonicalSampleRate || channels != CanonicalChannels {
		t.Errorf("got rate=%d channels=%d, want %d/%d", rate, channels, CanonicalSampleRate, CanonicalChannels)
	}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestIsCanonicalWAV(t *testing.T) {
	dir := t.TempDir()

	canonical := filepath.Join(dir, "canonical.wav")
	if err := writeCanonicalWAV(canonical, []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	stereo := filepath.Join(dir, "stereo.wav")
	writeTestWAV(t, stereo, CanonicalSampleRate, 2, []int{1, 1, 2, 2})

	slow := filepath.Join(dir, "slow.wav")
	writeTestWAV(t, slow, 8000, 1, []int{1, 2, 3})

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wav"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"canonical", canonical, true},
		{"stereo", stereo, false},
		{"wrong rate", slow, false},
		{"not a wav", junk, false},
		{"missing", filepath.Join(dir, "nope.wav"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCanonicalWAV(tt.path); got != tt.want {
				t.Errorf("isCanonicalWAV(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestReadPCM16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcm.wav")
	if err := writeCanonicalWAV(path, []int{1, -1, 256}); err != nil {
		t.Fatal(err)
	}

	pcm, err := ReadPCM16(path)
	if err != nil {
		t.Fatalf("ReadPCM16() error = %v", err)
	}
	want := []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x01}
	if len(pcm) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(pcm), len(want))
	}
	for i := range want {
		if pcm[i] != want[i] {
			t.Errorf("byte[%d] = %#x, want %#x", i, pcm[i], want[i])
		}
	}
}
