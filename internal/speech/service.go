package speech

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Vovarama1992/go-utils/logger"
	"google.golang.org/genai"
)

type Service struct {
	gen    Generator
	models []Model
	pick   func(n int) int
	log    *logger.ZapLogger
}

type Option func(*Service)

// WithPicker replaces the uniform random index source.
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

func NewService(gen Generator, log *logger.ZapLogger, opts ...Option) *Service {
	s := &Service{
		gen:    gen,
		models: Models,
		pick:   rand.IntN,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) PickModel() Model {
	return s.models[s.pick(len(s.models))]
}

// Synthesize asks one randomly chosen model to read text aloud. There is no
// fallback to the other model.
func (s *Service) Synthesize(ctx context.Context, text string) (*Speech, error) {
	model := s.PickModel()
	s.log.Log(logger.LogEntry{Level: "info", Message: "using model: " + string(model)})

	resp, err := s.gen.GenerateContent(ctx, string(model), Prompt(text), RequestConfig())
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", model, err)
	}

	blob := inlineAudio(resp)
	if blob == nil || len(blob.Data) == 0 {
		s.log.Log(logger.LogEntry{Level: "error", Message: "no audio data in response from " + string(model)})
		return nil, ErrNoAudioData
	}

	return &Speech{
		Model:    model,
		MIMEType: blob.MIMEType,
		Audio:    blob.Data,
	}, nil
}

func Prompt(text string) []*genai.Content {
	return []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: fmt.Sprintf(PromptTemplate, text)}},
		},
	}
}

func RequestConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: VoiceName},
			},
		},
	}
}

// candidates[0].content.parts[0].inlineData
func inlineAudio(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return nil
	}
	return c.Content.Parts[0].InlineData
}
