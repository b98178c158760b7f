package media

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantKind Kind
		wantErr  bool
	}{
		{"mp4 video", "/tmp/lecture.mp4", KindVideo, false},
		{"avi video", "clip.avi", KindVideo, false},
		{"mkv video", "clip.MKV", KindVideo, false},
		{"mov video", "clip.mov", KindVideo, false},
		{"wmv video", "clip.wmv", KindVideo, false},
		{"mp3 audio", "song.mp3", KindAudio, false},
		{"wav audio", "take.wav", KindAudio, false},
		{"flac audio", "take.FLAC", KindAudio, false},
		{"m4a audio", "memo.m4a", KindAudio, false},
		{"aac audio", "memo.aac", KindAudio, false},
		{"unknown extension", "notes.ogg", KindAudio, true},
		{"no extension", "recording", KindAudio, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Classify(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnrecognizedExtension) {
				t.Errorf("Classify(%q) error = %v, want ErrUnrecognizedExtension", tt.path, err)
			}
			if in.Kind != tt.wantKind {
				t.Errorf("Classify(%q) kind = %v, want %v", tt.path, in.Kind, tt.wantKind)
			}
			if in.Path != tt.path {
				t.Errorf("Classify(%q) path = %q", tt.path, in.Path)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindVideo.String(); got != "video" {
		t.Errorf("KindVideo.String() = %q, want video", got)
	}
	if got := KindAudio.String(); got != "audio" {
		t.Errorf("KindAudio.String() = %q, want audio", got)
	}
}
