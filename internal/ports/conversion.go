package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Vovarama1992/say_cheerfully/internal/audio"
	"github.com/Vovarama1992/say_cheerfully/internal/speech"
)

var ErrTextRequired = errors.New("text is required")

type ConversionResult struct {
	Success   bool   `json:"success"`
	FileName  string `json:"fileName"`
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url,omitempty"`
}

type ConversionService interface {
	// Convert — текст → речь → файл на диске
	Convert(ctx context.Context, text string) (*ConversionResult, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*speech.Speech, error)
}

type AudioStore interface {
	SaveNext(ctx context.Context, pcm []byte, now time.Time) (*audio.Artifact, error)
}

type ArtifactMirror interface {
	Mirror(ctx context.Context, art *audio.Artifact) (string, error)
}
