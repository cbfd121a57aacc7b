package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrAnalysisFailed wraps classifier transport errors and unparseable output.
var ErrAnalysisFailed = errors.New("analysis failed")

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const analysisPrompt = `Analyze this image for urban infrastructure issues.
1. Identify if there is a defect (pothole, crack, damaged sign, trash, streetlight outage, etc.).
2. If yes, strictly classify the Defect Type (e.g., "Pothole", "Cracks", "Debris", "Drainage", "Signage").
3. Estimate Severity (Low, Medium, High).
4. Write a concise technical description (1-2 sentences).

Return ONLY a JSON object with this structure:
{
  "isDefect": boolean,
  "defectType": string,
  "severity": string,
  "description": string,
  "title": string (a short, factual title like "Severe Pothole on [Road Surface]")
}`

// Classification is the vision model's verdict on a report photo.
type Classification struct {
	IsDefect    bool   `json:"isDefect"`
	DefectType  string `json:"defectType"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Title       string `json:"title"`
}

// Client classifies report photos through the external vision model.
type Client interface {
	Analyze(ctx context.Context, image string) (*Classification, error)
	Model() string
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type client struct {
	openai openai.Client
	model  string
}

func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &client{
		openai: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}, nil
}

// Analyze sends the image with the fixed instruction prompt and decodes the
// structured response. image may be a data URL or bare base64.
func (c *client) Analyze(ctx context.Context, image string) (*Classification, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "defect_classification",
		Description: openai.String("Infrastructure defect classification"),
		Schema:      classificationSchema,
		Strict:      openai.Bool(true),
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(analysisPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: toDataURL(image),
		}),
	}

	resp, err := c.openai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrAnalysisFailed)
	}

	result, err := decodeClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return result, nil
}

func (c *client) Model() string {
	return c.model
}

// toDataURL ensures the payload carries the inline-data prefix the API
// expects; bare base64 is treated as JPEG.
func toDataURL(image string) string {
	if strings.HasPrefix(image, "data:") {
		return image
	}
	return "data:image/jpeg;base64," + image
}

// decodeClassification tolerates models that wrap JSON in markdown fences
// despite the structured-output request.
func decodeClassification(content string) (*Classification, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result Classification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %v", err)
	}
	return &result, nil
}

var classificationSchema = generateSchema[Classification]()

func generateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
