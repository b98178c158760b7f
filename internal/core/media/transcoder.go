package media

import (
	"context"
	"os/exec"
	"time"

	"mediascribe/internal/core/logger"
)

// defaultTranscodeTimeout bounds a single ffmpeg invocation.
const defaultTranscodeTimeout = 2 * time.Minute

// commandRunner abstracts external process execution so tests can fake the
// transcoder.
type commandRunner interface {
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
}

type osCommandRunner struct{}

func (osCommandRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Transcoder shells out to ffmpeg to produce canonical waveforms. It is the
// black-box boundary for both video demuxing and the generic audio decode
// fallback; the contract is the parameter set (mono, 16 kHz, PCM16LE) and the
// failure classification.
type Transcoder struct {
	ffmpegPath string
	tmp        *TempFS
	runner     commandRunner
	log        *logger.Logger
	timeout    time.Duration
}

// NewTranscoder creates a Transcoder. An empty ffmpegPath means "ffmpeg"
// resolved from PATH.
func NewTranscoder(ffmpegPath string, tmp *TempFS, log *logger.Logger) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if log == nil {
		log = logger.New()
	}
	return &Transcoder{
		ffmpegPath: ffmpegPath,
		tmp:        tmp,
		runner:     osCommandRunner{},
		log:        log,
		timeout:    defaultTranscodeTimeout,
	}
}

// Available reports whether the ffmpeg binary can be resolved.
func (t *Transcoder) Available() bool {
	_, err := exec.LookPath(t.ffmpegPath)
	return err == nil
}

// ExtractAudio demuxes the audio track of a video container into a newly
// acquired canonical WAV temp file. On any failure the partial temp file is
// released and an ExtractionError is returned.
func (t *Transcoder) ExtractAudio(ctx context.Context, in Input) (Handle, error) {
	t.log.WithField("input", in.Path).Info("extracting audio from video")

	h, err := t.tmp.Acquire(".wav")
	if err != nil {
		return Handle{}, &ExtractionError{Path: in.Path, Err: err}
	}

	if err := t.toCanonical(ctx, in.Path, h.Path); err != nil {
		t.tmp.Release(h)
		ee := err.(*transcodeError)
		return Handle{}, &ExtractionError{Path: in.Path, Stderr: ee.output, Err: ee.err}
	}
	return h, nil
}

// DecodeGeneric converts an audio file of unknown or undecodable format into
// a newly acquired canonical WAV temp file. On failure the partial temp file
// is released and a ConversionError is returned.
func (t *Transcoder) DecodeGeneric(ctx context.Context, path string) (Handle, error) {
	t.log.WithField("input", path).Debug("decoding audio via ffmpeg fallback")

	h, err := t.tmp.Acquire(".wav")
	if err != nil {
		return Handle{}, &ConversionError{Path: path, Err: err}
	}

	if err := t.toCanonical(ctx, path, h.Path); err != nil {
		t.tmp.Release(h)
		return Handle{}, &ConversionError{Path: path, Err: err.(*transcodeError).err}
	}
	return h, nil
}

// transcodeError carries the captured process output alongside the cause.
type transcodeError struct {
	err    error
	output string
}

func (e *transcodeError) Error() string { return e.err.Error() }

func (t *Transcoder) toCanonical(ctx context.Context, input, output string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := []string{
		"-y",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		output,
	}

	out, err := t.runner.CombinedOutput(ctx, t.ffmpegPath, args)
	if err != nil {
		t.log.WithField("stderr", tail(string(out), 500)).WithError(err).Warn("ffmpeg failed")
		return &transcodeError{err: err, output: string(out)}
	}
	return nil
}

// tail returns at most the last n bytes of s, for log fields.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
