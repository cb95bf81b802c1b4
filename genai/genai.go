// Package genai wraps the generative model behind the overflow-prediction and
// waste-classification contracts. Every failure collapses to one of three
// kinds and callers treat all of them as "no result": prior persisted state
// stays untouched, nothing is fabricated.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"go-wastegrid/intelligence"
	"go-wastegrid/types"
)

var (
	ErrUnavailable = errors.New("genai: service unavailable")
	ErrMalformed   = errors.New("genai: malformed model output")
	ErrQuota       = errors.New("genai: quota exceeded")
)

const (
	callTimeout = 20 * time.Second
	modelName   = openai.GPT4oMini
)

type Client struct {
	api *openai.Client
}

func NewClient(apiKey string) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return &Client{}
	}
	return &Client{api: openai.NewClient(apiKey)}
}

func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

// OverflowResult is the validated prediction payload. Hours is nil when
// overflow is not imminent.
type OverflowResult struct {
	OverflowProbability float64  `json:"overflowProbability"`
	HoursToOverflow     *float64 `json:"estimatedTimeToOverflow"`
	UrgencyLevel        string   `json:"urgencyLevel"`
	ImmediateAction     string   `json:"immediateAction"`
	PreventiveStrategy  string   `json:"preventiveStrategy"`
	Confidence          float64  `json:"confidence"`
}

// PredictOverflow sends the structured ward context to the model and returns
// its validated prediction.
func (c *Client) PredictOverflow(ctx context.Context, in intelligence.PredictionInput) (*OverflowResult, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: no api key configured", ErrUnavailable)
	}

	trend, err := json.Marshal(in.WeeklyTrend)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding trend: %v", ErrMalformed, err)
	}
	dist, err := json.Marshal(in.SeverityDistribution)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding distribution: %v", ErrMalformed, err)
	}

	prompt := fmt.Sprintf(`Given the following reports for Ward %d:
- Number of active reports: %d
- Severity distribution: %s
- Average response time: %.0f minutes
- Past 7-day trend: %s
- Current cleanliness index: %.1f
- Infrastructure capacity: %.0f cubic meters

Predict:
1. Probability of overflow (percentage 0-100)
2. Estimated time to overflow (in hours, null if not imminent)
3. Urgency level (low / medium / high / critical)
4. Recommended immediate action (brief)
5. Long-term preventive strategy (brief)

Respond with valid JSON only:
{"overflowProbability": 0, "estimatedTimeToOverflow": null, "urgencyLevel": "", "immediateAction": "", "preventiveStrategy": "", "confidence": 0.0}`,
		in.WardNumber, in.ActiveReports, dist, in.AvgResponseTime, trend, in.CleanlinessIndex, in.BinCapacity)

	text, err := c.complete(ctx, "You are a predictive waste intelligence system for a municipal corporation.", prompt)
	if err != nil {
		return nil, err
	}

	var result OverflowResult
	if err := json.Unmarshal([]byte(extractJSON(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *OverflowResult) validate() error {
	if r.OverflowProbability < 0 || r.OverflowProbability > 100 {
		return fmt.Errorf("%w: probability %.1f out of range", ErrMalformed, r.OverflowProbability)
	}
	switch strings.ToLower(r.UrgencyLevel) {
	case "low", "medium", "high", "critical":
		r.UrgencyLevel = strings.ToLower(r.UrgencyLevel)
	default:
		return fmt.Errorf("%w: unknown urgency %q", ErrMalformed, r.UrgencyLevel)
	}
	if r.HoursToOverflow != nil && *r.HoursToOverflow < 0 {
		return fmt.Errorf("%w: negative hours to overflow", ErrMalformed)
	}
	return nil
}

// Urgency maps the validated urgency string to the alert urgency enum.
func (r *OverflowResult) Urgency() types.Urgency {
	switch r.UrgencyLevel {
	case "critical":
		return types.UrgencyCritical
	case "high":
		return types.UrgencyHigh
	case "medium":
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}

// Level maps the validated urgency string to the ward risk enum.
func (r *OverflowResult) Level() types.OverflowLevel {
	switch r.UrgencyLevel {
	case "critical":
		return types.OverflowCritical
	case "high":
		return types.OverflowHigh
	case "medium":
		return types.OverflowMedium
	default:
		return types.OverflowLow
	}
}

// WasteClassification is the typed result of image classification at intake.
type WasteClassification struct {
	WasteType                string   `json:"wasteType"`
	SeverityScore            int      `json:"severityScore"`
	EstimatedVolume          string   `json:"estimatedVolume"`
	RiskLevel                string   `json:"riskLevel"`
	IsIllegalDumping         bool     `json:"isIllegalDumping"`
	EnvironmentalHazardLevel int      `json:"environmentalHazardLevel"`
	Explanation              string   `json:"explanation"`
	Confidence               float64  `json:"confidence"`
	Recommendations          []string `json:"recommendations"`
}

// ClassifyWaste analyzes an uploaded report image (base64 JPEG) with optional
// ward context.
func (c *Client) ClassifyWaste(ctx context.Context, imageBase64 string, wardNumber int) (*WasteClassification, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: no api key configured", ErrUnavailable)
	}

	prompt := fmt.Sprintf(`Analyze the uploaded image and provide:
1. Waste type (plastic / organic / mixed / construction / medical / e-waste / hazardous / textile)
2. Severity score (1-5, 5 most severe)
3. Estimated volume (low / medium / high / critical)
4. Risk level (low / moderate / high / critical)
5. Is this likely illegal dumping?
6. Environmental hazard level (0-10)
7. Short explanation (2-3 sentences)
8. Confidence (0-1)

Location context: Ward %d

Respond with valid JSON only:
{"wasteType": "", "severityScore": 0, "estimatedVolume": "", "riskLevel": "", "isIllegalDumping": false, "environmentalHazardLevel": 0, "explanation": "", "confidence": 0.0, "recommendations": []}`,
		wardNumber)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an urban waste analysis system for a municipal corporation.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + imageBase64,
						},
					},
				},
			},
		},
		MaxTokens:   400,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, classifyErr(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformed)
	}

	var result WasteClassification
	if err := json.Unmarshal([]byte(extractJSON(resp.Choices[0].Message.Content)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.SeverityScore < 1 || result.SeverityScore > 5 {
		return nil, fmt.Errorf("%w: severity %d out of range", ErrMalformed, result.SeverityScore)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %.2f out of range", ErrMalformed, result.Confidence)
	}
	return &result, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   500,
		Temperature: 0.25,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", classifyErr(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformed)
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyErr folds transport and API errors into the failure taxonomy.
func classifyErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", ErrQuota, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// extractJSON slices the first top-level JSON object out of model text, which
// may be wrapped in prose or code fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
