package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"google.golang.org/genai"
)

const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/"
	DefaultModel     = "gemini-2.5-pro"
	DefaultTimeout   = 2 * time.Minute
	DefaultQuestions = 5

	apiVersion = "v1beta"
)

// Gateway is the set of model tasks the application needs.
type Gateway interface {
	GenerateStudyGuide(ctx context.Context, sources []models.StudySource) (*models.StudyGuide, error)
	GenerateQuiz(ctx context.Context, sources []models.StudySource, guide *models.StudyGuide, opts QuizOptions) (*models.Quiz, error)
	ExplainSimply(ctx context.Context, concepts []models.Concept) ([]models.SimplifiedExplanation, error)
	Chat(ctx context.Context, sources []models.StudySource, history []models.ChatMessage, message string) (string, error)
}

// QuizOptions tunes quiz generation. A non-empty SessionID makes the quiz
// collaborative: attempts on it are ranked together.
type QuizOptions struct {
	Questions int
	SessionID string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// generator is the part of genai.Models the gateway calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements Gateway on the Gemini SDK. The SDK client is created on
// first use, so a missing API key only fails the calls that need the model.
type Client struct {
	cfg  Config
	http *http.Client
	log  logging.Logger

	mu  sync.Mutex
	gen generator
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client handed to the SDK.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(cfg Config, log logging.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{cfg: cfg, log: log}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) connect(ctx context.Context) (generator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != nil {
		return c.gen, nil
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.gen = client.Models
	return c.gen, nil
}

// generate sends contents and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, task string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	gen, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := gen.GenerateContent(ctx, c.cfg.Model, contents, config)
	if err != nil {
		c.log.Warn(ctx, "model call failed", "task", task, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		var reason any
		if resp != nil && resp.PromptFeedback != nil {
			reason = resp.PromptFeedback.BlockReason
		}
		c.log.Warn(ctx, "model returned no text", "task", task, "block_reason", reason)
		return "", ErrEmptyResponse
	}

	c.log.Debug(ctx, "model call done", "task", task, "elapsed", time.Since(start))
	return text, nil
}

// structured sends one user turn of an instruction plus parts in JSON mode.
func (c *Client) structured(ctx context.Context, task, instruction string, parts []*genai.Part, schema *genai.Schema) (string, error) {
	all := append([]*genai.Part{genai.NewPartFromText(instruction)}, parts...)
	contents := []*genai.Content{{Role: string(models.RoleUser), Parts: all}}
	return c.generate(ctx, task, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
}

// decode parses a JSON answer, tolerating a markdown code fence around it.
func decode[T any](text string) (T, error) {
	var v T
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}

func (c *Client) GenerateStudyGuide(ctx context.Context, sources []models.StudySource) (*models.StudyGuide, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources to analyze")
	}
	parts, err := sourceParts(sources)
	if err != nil {
		return nil, err
	}

	text, err := c.structured(ctx, "study_guide", studyGuidePrompt(sources), parts, studyGuideSchema)
	if err != nil {
		return nil, err
	}

	guide, err := decode[models.StudyGuide](text)
	if err != nil {
		return nil, err
	}
	if guide.Title == "" || len(guide.Concepts) == 0 {
		return nil, fmt.Errorf("%w: study guide has no title or concepts", ErrMalformedResponse)
	}
	return &guide, nil
}

func (c *Client) GenerateQuiz(ctx context.Context, sources []models.StudySource, guide *models.StudyGuide, opts QuizOptions) (*models.Quiz, error) {
	n := opts.Questions
	if n <= 0 {
		n = DefaultQuestions
	}
	parts, err := sourceParts(sources)
	if err != nil {
		return nil, err
	}

	text, err := c.structured(ctx, "quiz", quizPrompt(guide, n), parts, quizSchema)
	if err != nil {
		return nil, err
	}

	quiz, err := decode[models.Quiz](text)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrMalformedResponse)
	}
	for i, q := range quiz.Questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformedResponse, i+1, err)
		}
	}
	if quiz.Title == "" && guide != nil {
		quiz.Title = guide.Title
	}
	if opts.SessionID != "" {
		quiz.Collaborative = true
		quiz.SessionID = opts.SessionID
	}
	return &quiz, nil
}

func (c *Client) ExplainSimply(ctx context.Context, concepts []models.Concept) ([]models.SimplifiedExplanation, error) {
	if len(concepts) == 0 {
		return nil, errors.New("no concepts to explain")
	}

	text, err := c.structured(ctx, "explain", explainPrompt(concepts), nil, explanationsSchema)
	if err != nil {
		return nil, err
	}

	out, err := decode[[]models.SimplifiedExplanation](text)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no explanations", ErrMalformedResponse)
	}
	return out, nil
}

func (c *Client) Chat(ctx context.Context, sources []models.StudySource, history []models.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+2)
	if len(sources) > 0 {
		parts, err := sourceParts(sources)
		if err != nil {
			return "", err
		}
		intro := genai.NewPartFromText("These are my study documents:\n" + sourceIndex(sources))
		contents = append(contents, &genai.Content{
			Role:  string(models.RoleUser),
			Parts: append([]*genai.Part{intro}, parts...),
		})
	}
	for _, m := range history {
		contents = append(contents, &genai.Content{Role: string(m.Role), Parts: []*genai.Part{{Text: m.Text}}})
	}
	contents = append(contents, &genai.Content{Role: string(models.RoleUser), Parts: []*genai.Part{{Text: message}}})

	return c.generate(ctx, "chat", contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: chatInstruction}}},
	})
}
