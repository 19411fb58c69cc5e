package speech

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

type Model string

const (
	ModelPro   Model = "gemini-2.5-pro-preview-tts"
	ModelFlash Model = "gemini-2.5-flash-preview-tts"
)

// Models — фиксированный набор, из которого выбирается модель на каждый запрос.
var Models = []Model{ModelPro, ModelFlash}

const (
	PromptTemplate = "Say cheerfully: %s"
	VoiceName      = "Kore"
	ModalityAudio  = "AUDIO"
)

var ErrNoAudioData = errors.New("no audio data received")

// Generator is the slice of the Gemini models API the service calls.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Speech is the decoded audio of one synthesis call.
type Speech struct {
	Model    Model
	MIMEType string
	Audio    []byte
}
