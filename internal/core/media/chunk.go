package media

import (
	"os"

	"mediascribe/internal/core/logger"
)

// Chunk is an ordered slice of a canonical waveform. Chunks of one waveform
// cover it completely and contiguously, with no gaps or overlaps.
type Chunk struct {
	Index  int
	Handle Handle
}

// Chunker splits oversized waveforms into bounded-duration segments.
type Chunker struct {
	tmp        *TempFS
	durationMS int
	threshold  int64
	log        *logger.Logger
}

// NewChunker creates a Chunker. durationMS is the window size; threshold is
// the encoded-file-size gate above which splitting kicks in. The threshold
// approximates the providers' payload limit, so it is checked against bytes
// on disk, not sample counts.
func NewChunker(tmp *TempFS, durationMS int, threshold int64, log *logger.Logger) *Chunker {
	if log == nil {
		log = logger.New()
	}
	return &Chunker{tmp: tmp, durationMS: durationMS, threshold: threshold, log: log}
}

// NeedsChunking reports whether the waveform's encoded size exceeds the
// provider payload threshold.
func (c *Chunker) NeedsChunking(h Handle) (bool, error) {
	info, err := os.Stat(h.Path)
	if err != nil {
		return false, err
	}
	return info.Size() > c.threshold, nil
}

// Split cuts the waveform into contiguous, non-overlapping windows of the
// configured duration; the final chunk may be shorter. Chunk files are owned
// temp files; the source handle is left untouched.
//
// If splitting fails (for example on a corrupt waveform), Split degrades to a
// single chunk wrapping the original handle rather than failing the pipeline.
// The returned flag reports that degradation so callers can log it as a
// fallback, not a success.
func (c *Chunker) Split(h Handle) ([]Chunk, bool) {
	samples, rate, channels, err := readWAV(h.Path)
	if err != nil || rate != CanonicalSampleRate || channels != CanonicalChannels {
		c.log.WithField("path", h.Path).WithError(err).
			Warn("waveform split failed, degrading to a single chunk")
		return []Chunk{{Index: 0, Handle: h}}, true
	}

	window := CanonicalSampleRate * c.durationMS / 1000
	if window <= 0 || len(samples) <= window {
		return []Chunk{{Index: 0, Handle: h}}, false
	}

	var chunks []Chunk
	for start := 0; start < len(samples); start += window {
		end := start + window
		if end > len(samples) {
			end = len(samples)
		}

		ch, err := c.tmp.Acquire(".wav")
		if err == nil {
			err = writeCanonicalWAV(ch.Path, samples[start:end])
			if err != nil {
				c.tmp.Release(ch)
			}
		}
		if err != nil {
			for _, prev := range chunks {
				c.tmp.Release(prev.Handle)
			}
			c.log.WithField("path", h.Path).WithError(err).
				Warn("waveform split failed, degrading to a single chunk")
			return []Chunk{{Index: 0, Handle: h}}, true
		}

		chunks = append(chunks, Chunk{Index: len(chunks), Handle: ch})
	}

	c.log.WithField("path", h.Path).WithField("chunks", len(chunks)).Info("split waveform")
	return chunks, false
}
