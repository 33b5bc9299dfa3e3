// Package genai wraps the external text-generation service used for
// itinerary content. The service is an opaque collaborator: requests
// carry a prompt, responses carry text.
package genai

import "context"

// TextGenerator produces completion text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}
