// Package query bridges questions about a corpus to the upstream
// language model.
package query

import "context"

// Bridge answers a natural-language question about a project given its
// corpus text. Implementations make one attempt with no automatic
// retry: repeated upstream calls have cost and non-idempotent billing
// implications.
type Bridge interface {
	Answer(ctx context.Context, project, question, corpusText string) (string, error)

	// Model returns the upstream model identifier, for health and REST
	// responses.
	Model() string
}
