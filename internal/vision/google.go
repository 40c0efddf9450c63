package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// GoogleConfig holds configuration for the Google decoder
type GoogleConfig struct {
	BaseConfig
	ProjectID       string `json:"project_id"`
	Location        string `json:"location"`
	CredentialsFile string `json:"credentials_file"`
}

// Load loads the Google configuration
func (c *GoogleConfig) Load() error {
	if err := c.LoadConfig(c.ConfigPath, "google", c); err != nil {
		return err
	}

	// Fall back to environment variables if not set
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if c.Location == "" {
		c.Location = os.Getenv("GOOGLE_LOCATION")
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = os.Getenv("GOOGLE_CREDENTIALS_FILE")
	}

	return nil
}

// GoogleDecoder implements the Decoder interface on Google's Vertex AI.
// The vision model does the actual barcode detection; this code only
// prompts it and parses the reply.
type GoogleDecoder struct {
	config GoogleConfig
	client *genai.Client
	model  *genai.GenerativeModel
}

// GoogleDecoderFactory implements DecoderFactory for Google decoders
type GoogleDecoderFactory struct {
	config GoogleConfig
}

// NewGoogleDecoderFactory creates a new Google decoder factory
func NewGoogleDecoderFactory(config GoogleConfig) *GoogleDecoderFactory {
	return &GoogleDecoderFactory{config: config}
}

// CreateDecoder creates a new Google decoder instance
func (f *GoogleDecoderFactory) CreateDecoder() (Decoder, error) {
	return &GoogleDecoder{
		config: f.config,
	}, nil
}

// Load initializes the Google decoder
func (d *GoogleDecoder) Load(ctx context.Context) error {
	opts := []option.ClientOption{}

	if d.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(d.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, d.config.ProjectID, d.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	d.client = client
	d.model = client.GenerativeModel("gemini-pro-vision")
	return nil
}

const decodePrompt = `This photo contains a retail product barcode (EAN-13, UPC-A, EAN-8
or ITF-14). Read the digits printed beneath the bars, left to right.

Format the response as a JSON object with exactly one of "error" or "success" populated.
If the digits are not clearly readable, raise an error explaining what went wrong.
{
	"error": {
		"error_reason": "string",
		"suggestion_for_better_results": "string"
	},
	"success": {
		"digits": "string of decimal digits only"
	}
}`

// DecodeBarcode reads the barcode digits from an image using Vertex AI.
// The returned string is raw model output; callers are expected to run
// it through barcode extraction and checksum validation before use.
func (d *GoogleDecoder) DecodeBarcode(ctx context.Context, imageData []byte) (string, error) {
	if d.model == nil {
		return "", fmt.Errorf("decoder not loaded")
	}

	img := genai.ImageData("image/jpeg", imageData)

	resp, err := d.model.GenerateContent(ctx, genai.Text(decodePrompt), img)
	if err != nil {
		return "", fmt.Errorf("failed to call ai: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response generated")
	}
	candidate := resp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	// The model wraps its JSON in a markdown fence.
	textContent := fmt.Sprintf("%v", candidate.Content.Parts[0])
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var output struct {
		Error struct {
			ErrorReason string `json:"error_reason"`
			Suggestion  string `json:"suggestion_for_better_results"`
		} `json:"error"`
		Success struct {
			Digits string `json:"digits"`
		} `json:"success"`
	}
	if err := json.Unmarshal([]byte(textContent), &output); err != nil {
		return "", fmt.Errorf("failed to parse model response: %w while parsing %s", err, textContent)
	}

	if output.Error.ErrorReason != "" {
		return "", fmt.Errorf("error: %s; suggestion: %s", output.Error.ErrorReason, output.Error.Suggestion)
	}
	if output.Success.Digits == "" {
		return "", fmt.Errorf("no digits in response")
	}

	return output.Success.Digits, nil
}
