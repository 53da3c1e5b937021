package classify

import (
	"context"
	"fmt"
	"strings"

	"medassist/internal/agent"
)

const specializationPromptTemplate = `A patient describes a health concern. Pick the single most relevant medical specialization from this list:
%s

Patient's concern: "%s"

Answer with exactly one lowercase word from the list and nothing else.`

// SpecializationClassifier maps a health concern to a field of practice so
// the directory lookup can filter doctors.
type SpecializationClassifier struct {
	llm agent.CompletionClient
}

func NewSpecializationClassifier(llm agent.CompletionClient) *SpecializationClassifier {
	return &SpecializationClassifier{llm: llm}
}

// Classify asks the model for a single specialization code. Answers outside
// the taxonomy map to SpecializationUnrecognized; that is a valid result,
// not an error.
func (c *SpecializationClassifier) Classify(ctx context.Context, text string) (Specialization, error) {
	prompt := fmt.Sprintf(specializationPromptTemplate, specializationList(), text)
	answer, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("specialization classification failed: %w", err)
	}

	label := Specialization(strings.ToLower(strings.TrimSpace(answer)))
	for _, specialization := range specializations {
		if label == specialization {
			return specialization, nil
		}
	}
	return SpecializationUnrecognized, nil
}

func specializationList() string {
	codes := make([]string, len(specializations))
	for i, specialization := range specializations {
		codes[i] = string(specialization)
	}
	return strings.Join(codes, ", ")
}
