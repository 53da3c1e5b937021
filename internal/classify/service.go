package classify

import (
	"context"

	"medassist/internal/agent"
)

// DoctorDirectory is the read-only view of the doctor store the chatbot flow
// joins classifier output against.
type DoctorDirectory interface {
	Find(ctx context.Context, specialization string) ([]DoctorMatch, error)
}

// Service orchestrates the classification flows. Every external call is a
// single blocking attempt: no retries, no fallback between classifiers, no
// partial responses.
type Service interface {
	ClassifyIntent(ctx context.Context, utt Utterance) ClassificationResult
	Navigate(ctx context.Context, utt Utterance) (NavigationResult, error)
	Chat(ctx context.Context, utt Utterance) (ChatResult, error)
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

type service struct {
	detector        *Detector
	keywords        *KeywordClassifier
	pages           *PageClassifier
	specializations *SpecializationClassifier
	remedy          *RemedyGenerator
	llm             agent.CompletionClient
	stt             agent.TranscriptionClient
	tts             agent.TTSClient
	directory       DoctorDirectory
}

func NewService(
	detector *Detector,
	keywords *KeywordClassifier,
	pages *PageClassifier,
	specializations *SpecializationClassifier,
	remedy *RemedyGenerator,
	llm agent.CompletionClient,
	stt agent.TranscriptionClient,
	tts agent.TTSClient,
	directory DoctorDirectory,
) Service {
	return &service{
		detector:        detector,
		keywords:        keywords,
		pages:           pages,
		specializations: specializations,
		remedy:          remedy,
		llm:             llm,
		stt:             stt,
		tts:             tts,
		directory:       directory,
	}
}

// detectLanguage fills in the advisory language of an utterance when the
// caller left it unset. The utterance is immutable once detected.
func (s *service) detectLanguage(utt Utterance) Utterance {
	if utt.Language == "" {
		utt.Language = s.detector.Detect(utt.Text)
	}
	return utt
}

// ClassifyIntent is the simple-intent flow: detect the language when the
// caller left it unset, then run the keyword classifier. Terminal on first
// classification.
func (s *service) ClassifyIntent(ctx context.Context, utt Utterance) ClassificationResult {
	utt = s.detectLanguage(utt)
	return ClassificationResult{
		Category: s.keywords.Classify(utt.Text, utt.Language),
		Text:     utt.Text,
		Language: utt.Language,
	}
}

// Navigate is the navigation flow: one page classification, and only for the
// conversational-assistant page an additional general text-generation call
// whose output is attached to the response. A classifier failure aborts the
// request; there is no fallback to keyword classification.
func (s *service) Navigate(ctx context.Context, utt Utterance) (NavigationResult, error) {
	category, err := s.pages.Classify(ctx, utt.Text)
	if err != nil {
		return NavigationResult{}, err
	}

	result := NavigationResult{Category: category}
	if category == PageMedibot {
		reply, err := s.llm.Complete(ctx, utt.Text)
		if err != nil {
			return NavigationResult{}, err
		}
		result.TextResponse = reply
	}
	return result, nil
}

// Chat is the chatbot flow. The specialization classification and the remedy
// generation are independent: both are always attempted, neither is gated on
// the other. The first failure, checked in call order, still fails the whole
// request; there are no degraded partial responses.
func (s *service) Chat(ctx context.Context, utt Utterance) (ChatResult, error) {
	utt = s.detectLanguage(utt)

	specialization, specErr := s.specializations.Classify(ctx, utt.Text)
	remedy, remedyErr := s.remedy.Generate(ctx, utt.Text, utt.Language)

	if specErr != nil {
		return ChatResult{}, specErr
	}
	if remedyErr != nil {
		return ChatResult{}, remedyErr
	}

	doctors, err := s.directory.Find(ctx, string(specialization))
	if err != nil {
		return ChatResult{}, err
	}
	if doctors == nil {
		doctors = []DoctorMatch{}
	}

	return ChatResult{
		Response:       remedy,
		Specialization: specialization,
		Doctors:        doctors,
	}, nil
}

func (s *service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return s.stt.Transcribe(ctx, audio)
}

func (s *service) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	return s.tts.Synthesize(ctx, text, language)
}
