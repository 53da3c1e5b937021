package classify

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// defaultLanguage is used whenever detection cannot produce a confident
// result. Language is advisory metadata, so the detector never fails.
const defaultLanguage = "en"

// Detector identifies the natural language of input text. The candidate set
// is fixed at construction; the statistical models are embedded in the
// library, so detection needs no network access.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Hindi,
		lingua.Bengali,
		lingua.Tamil,
		lingua.Telugu,
		lingua.Marathi,
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the detected language, or "en" when
// the input is empty or too ambiguous to call.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return defaultLanguage
	}
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return defaultLanguage
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
