// Package media implements the media transcription pipeline stages:
// input classification, audio extraction from video, normalization to the
// canonical waveform (mono, 16 kHz, 16-bit PCM WAV), and size-based chunking.
package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies a media input by container family.
type Kind int

const (
	KindAudio Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "audio"
}

// ErrUnrecognizedExtension flags inputs outside the recognized media set.
// Callers may still proceed: the generic decoder handles unknown audio.
var ErrUnrecognizedExtension = errors.New("unrecognized media extension")

var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mkv": true,
	".mov": true,
	".wmv": true,
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".m4a":  true,
	".aac":  true,
}

// Input is a media file path with its detected kind. Immutable once classified.
type Input struct {
	Path string
	Kind Kind
}

// Ext returns the lower-cased file extension of the input.
func (in Input) Ext() string {
	return strings.ToLower(filepath.Ext(in.Path))
}

// Classify determines the input kind from the file extension.
// Unrecognized extensions return an Input classified as audio together with
// ErrUnrecognizedExtension, so the caller can decide whether to proceed
// through the generic decoder.
func Classify(path string) (Input, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return Input{Path: path, Kind: KindVideo}, nil
	case audioExtensions[ext]:
		return Input{Path: path, Kind: KindAudio}, nil
	default:
		return Input{Path: path, Kind: KindAudio},
			fmt.Errorf("%w: %q", ErrUnrecognizedExtension, ext)
	}
}

// ExtractionError reports a failed audio extraction from a video container.
type ExtractionError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ConversionError reports a failed normalization of an audio file.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("audio conversion failed for %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
