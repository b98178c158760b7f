package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "already.wav")
	if err := writeCanonicalWAV(path, []int{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}

	tmp := NewTempFS(dir, nil)
	n := NewNormalizer(tmp, NewTranscoder("", tmp, nil), nil)

	h, err := n.Normalize(context.Background(), Input{Path: path, Kind: KindAudio})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if h.Path != path {
		t.Errorf("expected in-place handle, got %q", h.Path)
	}
	if h.Owned() {
		t.Error("passthrough handle must not be owned")
	}

	// Releasing the passthrough must leave the user's file alone.
	tmp.Release(h)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("source file deleted: %v", err)
	}
}

func TestNormalizeStereoWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stereo.wav")

	// Interleaved stereo pairs at the canonical rate; the downmix average of
	// each pair is what should come out.
	writeTestWAV(t, path, CanonicalSampleRate, 2, []int{100, 200, -100, 100, 0, 0})

	tmp := NewTempFS(dir, nil)
	n := NewNormalizer(tmp, NewTranscoder("", tmp, nil), nil)

	h, err := n.Normalize(context.Background(), Input{Path: path, Kind: KindAudio})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	defer tmp.Release(h)

	if !h.Owned() {
		t.Error("converted handle should be owned")
	}
	if !isCanonicalWAV(h.Path) {
		t.Error("output is not a canonical waveform")
	}

	samples, _, _, err := readWAV(h.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{150, 0, 0}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestNormalizeResamplesWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slow.wav")

	src := make([]int, 8000)
	writeTestWAV(t, path, 8000, 1, src)

	tmp := NewTempFS(dir, nil)
	n := NewNormalizer(tmp, NewTranscoder("", tmp, nil), nil)

	h, err := n.Normalize(context.Background(), Input{Path: path, Kind: KindAudio})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	defer tmp.Release(h)

	samples, rate, _, err := readWAV(h.Path)
	if err != nil {
		t.Fatal(err)
	}
	if rate != CanonicalSampleRate {
		t.Errorf("rate = %d, want %d", rate, CanonicalSampleRate)
	}
	// One second of 8 kHz audio becomes one second of 16 kHz audio.
	if len(samples) != 16000 {
		t.Errorf("got %d samples, want 16000", len(samples))
	}
}

func TestNormalizeInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(path, []byte("not audio at all"), 0600); err != nil {
		t.Fatal(err)
	}

	tmp := NewTempFS(dir, nil)
	n := NewNormalizer(tmp, NewTranscoder("", tmp, nil), nil)

	_, err := n.Normalize(context.Background(), Input{Path: path, Kind: KindAudio})
	if err == nil {
		t.Fatal("expected error for invalid file")
	}
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %T, want *ConversionError", err)
	}
	if ce.Path != path {
		t.Errorf("ConversionError.Path = %q, want %q", ce.Path, path)
	}
}

func TestDownmix(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int
		channels int
		want     []int
	}{
		{"mono unchanged", []int{1, 2, 3}, 1, []int{1, 2, 3}},
		{"stereo average", []int{10, 20, 30, 50}, 2, []int{15, 40}},
		{"three channels", []int{3, 6, 9}, 3, []int{6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := downmix(tt.samples, tt.channels)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sample[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResampleLinear(t *testing.T) {
	t.Run("same rate untouched", func(t *testing.T) {
		in := []int{1, 2, 3}
		got := resampleLinear(in, CanonicalSampleRate)
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("got %v, want %v", got, in)
		}
	})

	t.Run("upsample doubles length", func(t *testing.T) {
		got := resampleLinear(make([]int, 100), 8000)
		if len(got) != 200 {
			t.Errorf("got %d samples, want 200", len(got))
		}
	})

	t.Run("downsample halves length", func(t *testing.T) {
		got := resampleLinear(make([]int, 200), 32000)
		if len(got) != 100 {
			t.Errorf("got %d samples, want 100", len(got))
		}
	})

	t.Run("interpolates midpoints", func(t *testing.T) {
		got := resampleLinear([]int{0, 100}, 8000)
		if len(got) != 4 {
			t.Fatalf("got %d samples, want 4", len(got))
		}
		if got[1] != 50 {
			t.Errorf("midpoint = %d, want 50", got[1])
		}
	})
}
