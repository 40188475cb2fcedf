package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	ierrors "github.com/deepview/deepview-mcp/internal/errors"
)

const domainQuery = "query"

// defaultBaseURL is the Gemini API endpoint prefix.
const defaultBaseURL = "https://generativelanguage.googleapis.com"

// defaultTimeout bounds one generateContent call. Generous: the model
// call is the dominant latency source for the whole request.
const defaultTimeout = 120 * time.Second

const systemPrompt = "You are a diligent programming assistant analyzing code. Your task is to " +
	"answer questions about the provided code repository accurately and in detail. " +
	"Always include specific references to files, functions, and class names in your " +
	"responses. At the end, list related files, functions, and classes that could be " +
	"potentially relevant to the question, explaining their relevance."

// GeminiBridge implements Bridge against the Gemini generateContent API.
type GeminiBridge struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// GeminiOption customizes a GeminiBridge.
type GeminiOption func(*GeminiBridge)

// WithBaseURL overrides the API endpoint prefix. Used by tests.
func WithBaseURL(baseURL string) GeminiOption {
	return func(b *GeminiBridge) {
		b.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(b *GeminiBridge) {
		b.httpClient = client
	}
}

// NewGeminiBridge creates a bridge for the given API key and model.
func NewGeminiBridge(apiKey, model string, opts ...GeminiOption) *GeminiBridge {
	b := &GeminiBridge{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Model returns the configured model identifier.
func (b *GeminiBridge) Model() string {
	return b.model
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// Answer sends the question and corpus to the model and returns its
// text answer. One attempt, no retry; cancellation propagates through
// the request context.
func (b *GeminiBridge) Answer(ctx context.Context, project, question, corpusText string) (string, error) {
	userPrompt := fmt.Sprintf(`
Below is the content of a code repository for project '%s'.
Please answer the following question about the code:

<QUESTION>
%s
</QUESTION>

<CODE_REPOSITORY>
`+"```"+`
%s
`+"```"+`
</CODE_REPOSITORY>`, project, question, corpusText)

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userPrompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", b.baseURL, b.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal, err).
			WithContext("model", b.model)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := gjson.GetBytes(respBody, "error.message").Str
		if message == "" {
			message = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal,
			fmt.Errorf("%s", message)).
			WithContext("status", resp.StatusCode).
			WithContext("model", b.model)
	}

	answer := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text").Str
	if answer == "" {
		return "", ierrors.New(domainQuery, "Answer", ierrors.ErrInternal,
			fmt.Errorf("upstream response contained no answer text")).
			WithContext("model", b.model)
	}

	return answer, nil
}
