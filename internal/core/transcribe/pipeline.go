package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"mediascribe/internal/core/config"
	"mediascribe/internal/core/logger"
	"mediascribe/internal/core/media"
)

// Pipeline stages, used in PipelineError.Stage.
const (
	StageExtract = "extract"
	StageConvert = "convert"
	StageMeasure = "measure"
)

// PipelineError is a stage-level fatal failure: the run produced no
// transcript and the caller must decide what to offer the user.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline %s stage failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// Result is a finished transcription run. An empty Text with a nil error is
// a valid, if degenerate, success: nothing was recognized, but the pipeline
// itself worked.
type Result struct {
	Text string

	// Chunks is how many chunks were transcribed.
	Chunks int

	// FailedChunks counts chunks where every provider failed; those chunks
	// contribute an empty gap to Text.
	FailedChunks int

	// Degraded reports that chunking fell back to a single oversized chunk.
	Degraded bool
}

// Pipeline orchestrates classification routing, normalization, chunking, and
// the provider chain into one ordered transcript.
type Pipeline struct {
	workers    int
	tmp        *media.TempFS
	transcoder *media.Transcoder
	normalizer *media.Normalizer
	chunker    *media.Chunker
	chain      *Chain
	log        *logger.Logger
}

// NewPipeline wires a pipeline from configuration.
func NewPipeline(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.New()
	}

	chain, err := NewChain(cfg.Transcription, log)
	if err != nil {
		return nil, err
	}

	tmp := media.NewTempFS(cfg.Pipeline.TempDir, log)
	transcoder := media.NewTranscoder(cfg.Pipeline.FFmpegPath, tmp, log)

	return &Pipeline{
		workers:    cfg.Pipeline.Workers,
		tmp:        tmp,
		transcoder: transcoder,
		normalizer: media.NewNormalizer(tmp, transcoder, log),
		chunker: media.NewChunker(tmp, cfg.Pipeline.ChunkDurationMS,
			cfg.Pipeline.SizeThresholdBytes, log),
		chain: chain,
		log:   log,
	}, nil
}

// Run transcribes one classified media input. Stage failures (extraction,
// conversion) return a *PipelineError; per-chunk provider exhaustion does
// not fail the run — the chunk is left as a gap and counted in the Result.
func (p *Pipeline) Run(ctx context.Context, in media.Input) (*Result, error) {
	wave, err := p.routeToWaveform(ctx, in)
	if err != nil {
		return nil, err
	}

	need, err := p.chunker.NeedsChunking(wave)
	if err != nil {
		p.tmp.Release(wave)
		return nil, &PipelineError{Stage: StageMeasure, Err: err}
	}

	var (
		chunks   []media.Chunk
		degraded bool
	)
	if need {
		chunks, degraded = p.chunker.Split(wave)
	} else {
		chunks = []media.Chunk{{Index: 0, Handle: wave}}
	}

	// When splitting produced real chunk files, the source waveform has
	// been fully consumed; otherwise ownership moved into the single chunk
	// and the per-chunk release below covers it.
	if len(chunks) > 0 && chunks[0].Handle.Path != wave.Path {
		p.tmp.Release(wave)
	}

	results := make([]string, len(chunks))
	var failed atomic.Int32

	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	jobs := make(chan media.Chunk)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				text, err := p.chain.Recognize(ctx, c.Handle.Path, c.Index)
				p.tmp.Release(c.Handle)
				if err != nil {
					var ex *ExhaustedError
					if errors.As(err, &ex) {
						p.log.WithField("chunk", ex.Chunk).
							WithField("attempts", len(ex.Attempts)).
							Warn("all providers failed, leaving a gap in the transcript")
					} else {
						p.log.WithField("chunk", c.Index).WithError(err).
							Warn("chunk transcription failed, leaving a gap")
					}
					failed.Add(1)
					continue
				}
				results[c.Index] = text
			}
		}()
	}
	for _, c := range chunks {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	// Reassembly is by chunk index, never by completion order.
	var parts []string
	for _, text := range results {
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}

	return &Result{
		Text:         strings.Join(parts, " "),
		Chunks:       len(chunks),
		FailedChunks: int(failed.Load()),
		Degraded:     degraded,
	}, nil
}

// routeToWaveform sends the input through exactly one of the demux or
// normalize paths and returns the canonical waveform handle.
func (p *Pipeline) routeToWaveform(ctx context.Context, in media.Input) (media.Handle, error) {
	switch in.Kind {
	case media.KindVideo:
		h, err := p.transcoder.ExtractAudio(ctx, in)
		if err != nil {
			return media.Handle{}, &PipelineError{Stage: StageExtract, Err: err}
		}
		return h, nil
	default:
		h, err := p.normalizer.Normalize(ctx, in)
		if err != nil {
			return media.Handle{}, &PipelineError{Stage: StageConvert, Err: err}
		}
		return h, nil
	}
}
