// Package genai wraps the Gemini REST API behind the five operations the
// co-pilot needs. All failure paths go through a pluggable Classifier so the
// brittle substring matching lives in exactly one place.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"storefront/internal/domain"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
	HTTPClient *http.Client
	Classifier Classifier
}

// Client is a lightweight facade over the Gemini generateContent and predict
// endpoints.
type Client struct {
	apiKey     string
	model      string
	imageModel string
	baseURL    string
	httpClient *http.Client
	classify   Classifier
}

// DraftCandidate is a generated product concept awaiting operator review.
type DraftCandidate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Enrichment carries the detail fields the enrichment stage merges into a
// freshly published product.
type Enrichment struct {
	Price             float64  `json:"price"`
	Details           []string `json:"details"`
	UsageInstructions []string `json:"usageInstructions"`
	ImagePrompt       string   `json:"imagePrompt"`
}

const defaultTimeout = 60 * time.Second

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	OutputMimeType string `json:"outputMimeType,omitempty"`
}

type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType,omitempty"`
	} `json:"predictions"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; one with a 60s timeout is created so a hung provider call
// fails instead of pinning its workflow forever.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "imagen-4.0-generate-001"
	}
	classify := opts.Classifier
	if classify == nil {
		classify = DefaultClassifier
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		imageModel: imageModel,
		baseURL:    baseURL,
		httpClient: httpClient,
		classify:   classify,
	}, nil
}

// GenerateDraftCandidates asks the model for two fresh digital-product
// concepts, biased away from names already in the catalog. Candidates with a
// blank name or description are dropped.
func (c *Client) GenerateDraftCandidates(ctx context.Context, existingNames []string) ([]DraftCandidate, error) {
	prompt := "Generate 2 new, unique digital product concepts (e-books, templates, courses). " +
		"Respond strictly as a JSON array of objects with fields \"name\" (catchy, unique product name) " +
		"and \"description\" (one concise sentence)."
	if len(existingNames) > 0 {
		prompt += " Avoid these existing names: " + strings.Join(existingNames, ", ") + "."
	}

	text, err := c.generateText(ctx, prompt, nil, true)
	if err != nil {
		return nil, err
	}
	var parsed []DraftCandidate
	if err := decodePayload(text, &parsed); err != nil {
		return nil, c.classify(0, fmt.Errorf("invalid draft payload: %w", err))
	}

	titler := cases.Title(language.English)
	out := make([]DraftCandidate, 0, len(parsed))
	for _, cand := range parsed {
		name := strings.TrimSpace(cand.Name)
		desc := strings.TrimSpace(cand.Description)
		if name == "" || desc == "" {
			continue
		}
		out = append(out, DraftCandidate{Name: titler.String(name), Description: desc})
	}
	return out, nil
}

// EnrichDraft fills in pricing, feature, and usage detail for a draft, plus
// the prompt the image stage will render.
func (c *Client) EnrichDraft(ctx context.Context, name, description string) (*Enrichment, error) {
	prompt := fmt.Sprintf("Enrich the following digital product concept. Name: %q. Description: %q. "+
		"Respond strictly as JSON: {\"price\":number between 29.99 and 149.99,"+
		"\"details\":[3-4 key features],\"usageInstructions\":[2-3 brief instructions],"+
		"\"imagePrompt\":string (a detailed prompt for a professional product image)}.",
		name, description)

	text, err := c.generateText(ctx, prompt, nil, true)
	if err != nil {
		return nil, err
	}
	var enrichment Enrichment
	if err := decodePayload(text, &enrichment); err != nil {
		return nil, c.classify(0, fmt.Errorf("invalid enrichment payload: %w", err))
	}
	if enrichment.Price < 0 {
		enrichment.Price = 0
	}
	return &enrichment, nil
}

// SynthesizeImage renders the given prompt with the image model and returns
// the result as a JPEG data URL, ready for the storefront to display inline.
func (c *Client) SynthesizeImage(ctx context.Context, prompt string) (string, error) {
	payload := imagenRequest{
		Instances: []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{
			SampleCount:    1,
			AspectRatio:    "1:1",
			OutputMimeType: "image/jpeg",
		},
	}
	endpoint := c.endpoint(c.imageModel, "predict")

	var out imagenResponse
	if err := c.post(ctx, endpoint, payload, &out); err != nil {
		return "", err
	}
	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		return "", c.classify(0, errors.New("api did not return any images"))
	}
	return "data:image/jpeg;base64," + out.Predictions[0].BytesBase64Encoded, nil
}

// SynthesizePromotionalText writes a short social media post announcing the
// product.
func (c *Client) SynthesizePromotionalText(ctx context.Context, product domain.Product) (string, error) {
	prompt := fmt.Sprintf("Generate an engaging social media post to announce a new product: %q. "+
		"Description: %q. Include relevant hashtags.", product.Name, product.Description)
	return c.generateText(ctx, prompt, nil, false)
}

// ChatReply produces one assistant turn given a product's descriptive context
// and the full conversation history.
func (c *Client) ChatReply(ctx context.Context, product domain.Product, history []domain.ChatMessage) (string, error) {
	system := &geminiContent{Parts: []geminiPart{{Text: chatSystemInstruction(product)}}}
	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		role := "model"
		if msg.Sender == domain.ChatSenderUser {
			role = "user"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Text}}})
	}

	payload := geminiRequest{Contents: contents, SystemInstruction: system}
	var out geminiResponse
	if err := c.post(ctx, c.endpoint(c.model, "generateContent"), payload, &out); err != nil {
		return "", err
	}
	text := extractText(out)
	if text == "" {
		return "", c.classify(0, errors.New("empty chat response"))
	}
	return text, nil
}

func chatSystemInstruction(product domain.Product) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are a friendly AI support agent for Cortex Commerce, answering questions about: %q. ", product.Name)
	fmt.Fprintf(sb, "Description: %q. Price: $%.2f.", product.Description, product.EffectivePrice())
	if len(product.Details) > 0 {
		fmt.Fprintf(sb, " Key Features: %s.", strings.Join(product.Details, ", "))
	}
	sb.WriteString(" Answer concisely based only on this product info. Do not make up features. Be helpful and brief.")
	return sb.String()
}

func (c *Client) generateText(ctx context.Context, prompt string, system *geminiContent, asJSON bool) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		SystemInstruction: system,
	}
	if asJSON {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:      0.7,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		}
	}

	var out geminiResponse
	if err := c.post(ctx, c.endpoint(c.model, "generateContent"), payload, &out); err != nil {
		return "", err
	}
	text := extractText(out)
	if text == "" {
		return "", c.classify(0, errors.New("empty model response"))
	}
	return text, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return c.classify(0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return c.classify(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classify(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return c.classify(resp.StatusCode, apiError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.classify(0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return fmt.Errorf("gemini api status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	return fmt.Errorf("gemini api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func (c *Client) endpoint(model, verb string) string {
	return fmt.Sprintf("%s/models/%s:%s", c.baseURL, url.PathEscape(model), verb)
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func decodePayload(raw string, out any) error {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return errors.New("empty payload")
	}
	return json.Unmarshal([]byte(cleaned), out)
}

// extractJSONFragment strips markdown fences and surrounding prose the model
// occasionally wraps around its JSON output.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
