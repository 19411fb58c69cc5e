package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/say_cheerfully/internal/error_notificator"
	"github.com/Vovarama1992/say_cheerfully/internal/ports"
	"github.com/rs/xid"
)

type conversionService struct {
	tts      ports.Synthesizer
	store    ports.AudioStore
	mirror   ports.ArtifactMirror
	notifier error_notificator.Notificator
	log      *logger.ZapLogger
	now      func() time.Time
}

// NewConversionService wires the synthesize → persist pipeline. mirror may be nil.
func NewConversionService(
	tts ports.Synthesizer,
	store ports.AudioStore,
	mirror ports.ArtifactMirror,
	n error_notificator.Notificator,
	log *logger.ZapLogger,
) ports.ConversionService {
	return &conversionService{
		tts:      tts,
		store:    store,
		mirror:   mirror,
		notifier: n,
		log:      log,
		now:      time.Now,
	}
}

func (s *conversionService) Convert(ctx context.Context, text string) (*ports.ConversionResult, error) {
	if text == "" {
		return nil, ports.ErrTextRequired
	}

	id := xid.New().String()

	sp, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		s.fail(id, err, "synthesize")
		return nil, err
	}

	art, err := s.store.SaveNext(ctx, sp.Audio, s.now())
	if err != nil {
		s.fail(id, err, "save audio")
		return nil, err
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("convert id=%s model=%s file=%s", id, sp.Model, art.FileName),
		Service: "convert",
	})

	res := &ports.ConversionResult{
		Success:   true,
		FileName:  art.FileName,
		Timestamp: art.Timestamp,
	}

	if s.mirror != nil {
		url, err := s.mirror.Mirror(ctx, art)
		if err != nil {
			// локальный файл уже записан, запрос не валим
			s.fail(id, err, "mirror "+art.FileName)
		} else {
			res.URL = url
		}
	}

	return res, nil
}

func (s *conversionService) fail(id string, err error, stage string) {
	details := fmt.Sprintf("convert id=%s stage=%s", id, stage)
	s.log.Log(logger.LogEntry{Level: "error", Message: details, Error: err, Service: "convert"})

	go func() {
		_ = s.notifier.Notify(context.Background(), err, details)
	}()
}
