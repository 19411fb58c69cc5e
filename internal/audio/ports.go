package audio

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Format — как PCM-поток ложится на диск.
type Format string

const (
	FormatWAV Format = "wav" // RIFF/WAVE контейнер, mono 24kHz 16-bit
	FormatRaw Format = "raw" // байты как есть
)

const (
	SampleRate  = 24000
	NumChannels = 1
	BitDepth    = 16
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatWAV:
		return FormatWAV, nil
	case FormatRaw:
		return FormatRaw, nil
	}
	return "", fmt.Errorf("unknown audio format %q", s)
}

// Artifact describes a file left on disk by a successful save.
type Artifact struct {
	FileName  string
	Path      string
	Timestamp int64
	Size      int64
	Format    Format
}

type Store interface {
	Save(ctx context.Context, name string, pcm []byte) (*Artifact, error)
	// SaveNext picks "<epoch-ms>.wav" starting at now and never overwrites an existing file.
	SaveNext(ctx context.Context, pcm []byte, now time.Time) (*Artifact, error)
}

func FileName(timestamp int64) string {
	return strconv.FormatInt(timestamp, 10) + ".wav"
}
