package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/say_cheerfully/internal/audio"
)

type Service struct {
	client S3Client
	now    func() time.Time
}

func NewService(client S3Client) *Service {
	return &Service{client: client, now: time.Now}
}

// ObjectKey — путь в бакете
func (s *Service) ObjectKey(fileName string) string {
	date := s.now().UTC().Format("2006-01-02")
	return fmt.Sprintf("tts/%s/%s", date, filepath.Base(fileName))
}

// Mirror uploads a saved artifact and returns its public URL.
func (s *Service) Mirror(ctx context.Context, art *audio.Artifact) (string, error) {
	f, err := os.Open(art.Path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", art.FileName, err)
	}
	defer f.Close()

	return s.client.PutObject(ctx, s.ObjectKey(art.FileName), f, art.Size, ContentType(art.Format))
}

func ContentType(f audio.Format) string {
	if f == audio.FormatRaw {
		return "application/octet-stream"
	}
	return "audio/wav"
}
