package classify

import (
	"context"
	"fmt"

	"medassist/internal/agent"
)

const remedyPromptTemplate = `A patient asks (language %s): "%s"

Reply with only a short home remedy or first-step advice for this concern, in the same language. Keep it under three sentences. Do not use escape characters in the reply.`

// RemedyGenerator produces short remedy text for a described concern. The
// escape-character instruction is advice to the model, not a structural
// guarantee; consumers must not assume clean text.
type RemedyGenerator struct {
	llm agent.CompletionClient
}

func NewRemedyGenerator(llm agent.CompletionClient) *RemedyGenerator {
	return &RemedyGenerator{llm: llm}
}

func (g *RemedyGenerator) Generate(ctx context.Context, text, language string) (string, error) {
	body, err := g.llm.Complete(ctx, fmt.Sprintf(remedyPromptTemplate, language, text))
	if err != nil {
		return "", fmt.Errorf("remedy generation failed: %w", err)
	}
	return body, nil
}
