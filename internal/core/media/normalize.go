package media

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
	"mediascribe/internal/core/logger"
)

// Normalizer converts arbitrary audio files into the canonical waveform.
// WAV, mp3, and flac are decoded natively; m4a, aac, and anything else go
// through the ffmpeg generic decoder.
type Normalizer struct {
	tmp        *TempFS
	transcoder *Transcoder
	log        *logger.Logger
}

func NewNormalizer(tmp *TempFS, transcoder *Transcoder, log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.New()
	}
	return &Normalizer{tmp: tmp, transcoder: transcoder, log: log}
}

// Normalize produces a canonical waveform handle for an audio input.
// A source that is already canonical WAV is used in place: the returned
// handle wraps the original path and is not owned by the pipeline, so later
// stages will not delete the user's file. Every other source is decoded,
// downmixed to mono, resampled to 16 kHz, and exported to a new temp WAV.
func (n *Normalizer) Normalize(ctx context.Context, in Input) (Handle, error) {
	ext := in.Ext()

	if ext == ".wav" && isCanonicalWAV(in.Path) {
		n.log.WithField("input", in.Path).Debug("source already canonical, using in place")
		return n.tmp.Wrap(in.Path), nil
	}

	var (
		samples  []int
		rate     int
		channels int
		err      error
	)

	switch ext {
	case ".wav":
		samples, rate, channels, err = readWAV(in.Path)
	case ".mp3":
		samples, rate, channels, err = decodeMP3(in.Path)
	case ".flac":
		samples, rate, channels, err = decodeFLAC(in.Path)
	case ".m4a", ".aac":
		// No native decoder; these go through the external transcoder.
		return n.transcoder.DecodeGeneric(ctx, in.Path)
	default:
		n.log.WithField("ext", ext).Info("unknown audio format, trying generic decoder")
		return n.transcoder.DecodeGeneric(ctx, in.Path)
	}
	if err != nil {
		return Handle{}, &ConversionError{Path: in.Path, Err: err}
	}

	n.log.WithField("input", in.Path).
		WithField("sample_rate", rate).
		WithField("channels", channels).
		Info("converting audio to canonical waveform")

	mono := downmix(samples, channels)
	mono = resampleLinear(mono, rate)

	h, err := n.tmp.Acquire(".wav")
	if err != nil {
		return Handle{}, &ConversionError{Path: in.Path, Err: err}
	}
	if err := writeCanonicalWAV(h.Path, mono); err != nil {
		n.tmp.Release(h)
		return Handle{}, &ConversionError{Path: in.Path, Err: err}
	}
	return h, nil
}

// decodeMP3 decodes an mp3 file. go-mp3 always emits 16-bit stereo frames
// at the source sample rate.
func decodeMP3(path string) (samples []int, rate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode mp3: %w", err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read mp3 samples: %w", err)
	}

	samples = make([]int, len(raw)/2)
	for i := range samples {
		samples[i] = int(int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8))
	}
	return samples, d.SampleRate(), 2, nil
}

// decodeFLAC decodes a flac file into interleaved samples scaled to 16-bit.
func decodeFLAC(path string) (samples []int, rate, channels int, err error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode flac: %w", err)
	}
	defer stream.Close()

	rate = int(stream.Info.SampleRate)
	channels = int(stream.Info.NChannels)
	shift := int(stream.Info.BitsPerSample) - 16

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to parse flac frame: %w", err)
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				s := int(frame.Subframes[ch].Samples[i])
				if shift > 0 {
					s >>= shift
				} else if shift < 0 {
					s <<= -shift
				}
				samples = append(samples, s)
			}
		}
	}
	return samples, rate, channels, nil
}

// downmix averages interleaved channels into mono.
func downmix(samples []int, channels int) []int {
	if channels <= 1 {
		return samples
	}
	mono := make([]int, len(samples)/channels)
	for i := range mono {
		sum := 0
		for ch := 0; ch < channels; ch++ {
			sum += samples[i*channels+ch]
		}
		mono[i] = sum / channels
	}
	return mono
}

// resampleLinear converts mono samples from the source rate to the canonical
// rate by linear interpolation. Speech recognition is tolerant of the
// interpolation error; no windowed-sinc filter is warranted here.
func resampleLinear(mono []int, from int) []int {
	if from == CanonicalSampleRate || from <= 0 || len(mono) == 0 {
		return mono
	}
	n := int(float64(len(mono)) * float64(CanonicalSampleRate) / float64(from))
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		pos := float64(i) * float64(from) / float64(CanonicalSampleRate)
		j := int(pos)
		if j >= len(mono)-1 {
			out[i] = mono[len(mono)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = int(float64(mono[j])*(1-frac) + float64(mono[j+1])*frac)
	}
	return out
}
