package media

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Canonical waveform parameters shared by every transcription provider.
const (
	CanonicalSampleRate = 16000
	CanonicalChannels   = 1
	CanonicalBitDepth   = 16
)

// readWAV decodes an entire WAV file into interleaved PCM samples.
func readWAV(path string) (samples []int, rate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode WAV: %w", err)
	}
	return buf.Data, buf.Format.SampleRate, buf.Format.NumChannels, nil
}

// writeCanonicalWAV writes mono 16 kHz 16-bit samples to path.
func writeCanonicalWAV(path string, samples []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	e := wav.NewEncoder(f, CanonicalSampleRate, CanonicalBitDepth, CanonicalChannels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: CanonicalChannels, SampleRate: CanonicalSampleRate},
		Data:           samples,
		SourceBitDepth: CanonicalBitDepth,
	}
	if err := e.Write(buf); err != nil {
		e.Close()
		f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := e.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}

// isCanonicalWAV probes whether the file is already a mono 16 kHz 16-bit
// PCM WAV that providers can consume without conversion.
func isCanonicalWAV(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	return d.IsValidFile() &&
		int(d.NumChans) == CanonicalChannels &&
		int(d.SampleRate) == CanonicalSampleRate &&
		int(d.BitDepth) == CanonicalBitDepth
}

// ReadPCM16 returns the raw little-endian 16-bit PCM payload of a canonical
// waveform, the form the speech providers post over the wire.
func ReadPCM16(path string) ([]byte, error) {
	samples, _, _, err := readWAV(path)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		out[2*i] = byte(uint16(int16(s)))
		out[2*i+1] = byte(uint16(int16(s)) >> 8)
	}
	return out, nil
}
