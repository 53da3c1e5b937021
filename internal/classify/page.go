package classify

import (
	"context"
	"fmt"
	"strings"

	"medassist/internal/agent"
)

const pagePromptTemplate = `You are the navigation assistant of a healthcare app. Classify the user's request into exactly one of these pages:
- medibot: the user wants to chat about symptoms or get medical advice
- mediscanner: the user wants to scan or analyse a medicine, wound or body part with the camera
- user_profile: the user wants to view or change their own profile details
- upload_prescription: the user wants to upload or store a prescription
- book_appointment: the user wants to find a doctor or book an appointment

User request: "%s"

Answer with exactly one lowercase word from the list above and nothing else.`

// PageClassifier routes free-form input to an app page via the language
// model.
type PageClassifier struct {
	llm agent.CompletionClient
}

func NewPageClassifier(llm agent.CompletionClient) *PageClassifier {
	return &PageClassifier{llm: llm}
}

// Classify asks the model for a single-word page label and validates it
// against the closed taxonomy. An answer outside the taxonomy maps to
// PageUnclassified instead of being passed downstream as control flow.
func (c *PageClassifier) Classify(ctx context.Context, text string) (PageCategory, error) {
	answer, err := c.llm.Complete(ctx, fmt.Sprintf(pagePromptTemplate, text))
	if err != nil {
		return "", fmt.Errorf("page classification failed: %w", err)
	}

	label := PageCategory(strings.ToLower(strings.TrimSpace(answer)))
	for _, category := range pageCategories {
		if label == category {
			return category, nil
		}
	}
	return PageUnclassified, nil
}
