package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const maxNameAttempts = 1000

var _ Store = (*FileStore)(nil)

type FileStore struct {
	dir    string
	format Format
	log    *logger.ZapLogger
}

func NewFileStore(dir string, format Format, log *logger.ZapLogger) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{
		dir:    dir,
		format: format,
		log:    log,
	}
}

func (s *FileStore) Save(ctx context.Context, name string, pcm []byte) (*Artifact, error) {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return s.write(f, name, pcm)
}

func (s *FileStore) SaveNext(ctx context.Context, pcm []byte, now time.Time) (*Artifact, error) {
	ts := now.UnixMilli()

	for i := 0; i < maxNameAttempts; i++ {
		name := FileName(ts)

		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			// тот же миллисекундный слот уже занят соседним запросом
			ts++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}

		art, err := s.write(f, name, pcm)
		if err != nil {
			return nil, err
		}
		art.Timestamp = ts
		return art, nil
	}

	return nil, fmt.Errorf("no free file name after %d attempts", maxNameAttempts)
}

func (s *FileStore) write(f *os.File, name string, pcm []byte) (*Artifact, error) {
	path := f.Name()
	s.log.Log(logger.LogEntry{Level: "info", Message: "saving audio file to: " + path})

	if err := s.encode(f, pcm); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("file saved: %s (%s)", name, humanize.Bytes(uint64(info.Size()))),
	})

	return &Artifact{
		FileName: name,
		Path:     path,
		Size:     info.Size(),
		Format:   s.format,
	}, nil
}

func (s *FileStore) encode(w io.WriteSeeker, pcm []byte) error {
	if s.format == FormatRaw {
		_, err := w.Write(pcm)
		return err
	}
	return EncodeWAV(w, pcm)
}

// EncodeWAV wraps little-endian 16-bit mono PCM into a WAVE container.
func EncodeWAV(w io.WriteSeeker, pcm []byte) error {
	enc := wav.NewEncoder(w, SampleRate, BitDepth, NumChannels, 1)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: NumChannels,
			SampleRate:  SampleRate,
		},
		Data:           PCM16Samples(pcm),
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// PCM16Samples reads little-endian int16 samples. An odd trailing byte is
// completed with a zero high byte.
func PCM16Samples(pcm []byte) []int {
	out := make([]int, (len(pcm)+1)/2)
	for i := range out {
		lo := pcm[2*i]
		var hi byte
		if 2*i+1 < len(pcm) {
			hi = pcm[2*i+1]
		}
		out[i] = int(int16(uint16(lo) | uint16(hi)<<8))
	}
	return out
}
