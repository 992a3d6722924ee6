package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"

	"github.com/henri123lemoine/layoutgen/internal/debug"
)

const systemPrompt = `You are a UI layout generator. Reply with one JSON object and nothing else.

Node types:
- "screen" and "frame" are containers: {"type", "name", "layout": "vertical"|"horizontal", "items": [...],
  optional "padding", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft", "itemSpacing",
  "minWidth", "minHeight", "primaryAxisAlignItems", "counterAxisAlignItems" (MIN, CENTER, MAX, SPACE_BETWEEN)}.
- "text": {"type": "text", "value": "...", "style": {"fontSize", "fontWeight": "bold"|"regular", "color"}}.
- "button", "card", "header", "input": {"type", "label" or "name", optional "state" such as "hover" or
  "disabled", optional "style": {"backgroundColor", "color", "fontSize", "radius"}}.
- "multi-screen" may only be the root: {"type": "multi-screen", "screens": [...], "flows": ["label of the
  arrow from screen 1 to 2", ...]}.

Example:
{"type": "screen", "name": "Welcome", "layout": "vertical", "items": [
  {"type": "header", "label": "Home"},
  {"type": "text", "value": "Welcome!", "style": {"fontSize": 24, "fontWeight": "bold"}},
  {"type": "button", "label": "Get started"}
]}`

// OpenAIOptions configures the chat-completions client.
type OpenAIOptions struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	// MaxImageSize bounds the longer side of a reference image, in pixels.
	MaxImageSize int
	// MaxDepth bounds the nesting of a reply; zero means layout.DefaultMaxDepth.
	MaxDepth int
}

// DefaultOpenAIOptions returns the defaults used without configuration.
func DefaultOpenAIOptions() OpenAIOptions {
	return OpenAIOptions{
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		Model:        "gpt-4o",
		Temperature:  0.2,
		MaxTokens:    800,
		Timeout:      60 * time.Second,
		MaxImageSize: 1024,
	}
}

// OpenAI generates layouts with an OpenAI-compatible chat-completions endpoint.
type OpenAI struct {
	opts   OpenAIOptions
	client *http.Client
}

// NewOpenAI returns a client for opts.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	return &OpenAI{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for a layout and parses its reply.
func (c *OpenAI) Generate(ctx context.Context, req Request) (*Result, error) {
	defer debug.Timed("generate")()

	if c.opts.APIKey == "" {
		return nil, &UpstreamError{Op: "authenticate", Err: errors.New("no API key configured")}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &UpstreamError{Op: "prepare request", Err: errors.New("empty prompt")}
	}

	user, err := c.userMessage(req)
	if err != nil {
		return nil, &UpstreamError{Op: "prepare request", Err: err}
	}
	body, err := json.Marshal(chatRequest{
		Model:       c.opts.Model,
		Messages:    []chatMessage{{Role: "system", Content: systemPrompt}, user},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return nil, &UpstreamError{Op: "prepare request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Op: "prepare request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Op: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: "read response", Status: resp.StatusCode, Err: err}
	}

	var parsed chatResponse
	jsonErr := json.Unmarshal(data, &parsed)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if jsonErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, &UpstreamError{Op: "request", Status: resp.StatusCode, Err: errors.New(msg)}
	}
	if jsonErr != nil {
		return nil, &UpstreamError{Op: "decode response", Status: resp.StatusCode, Err: jsonErr}
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, &UpstreamError{Op: "decode response", Status: resp.StatusCode, Err: errors.New("no content in reply")}
	}

	raw := StripFences(parsed.Choices[0].Message.Content)
	debug.Event("generated", "model", c.opts.Model, "bytes", len(raw))
	doc, err := ParseFile("reply.json", []byte(raw), c.opts.MaxDepth)
	if err != nil {
		return nil, &UpstreamError{Op: "parse reply", Err: fmt.Errorf("invalid JSON from model: %w", err)}
	}
	return &Result{Doc: doc, Raw: raw}, nil
}

func (c *OpenAI) userMessage(req Request) (chatMessage, error) {
	text := req.Prompt
	if tokens := strings.TrimSpace(req.Tokens); tokens != "" {
		text += "\n\nUse these design tokens:\n" + tokens
	}
	if len(req.Image) == 0 {
		return chatMessage{Role: "user", Content: text}, nil
	}

	url, err := c.imageDataURL(req.Image)
	if err != nil {
		return chatMessage{}, fmt.Errorf("image %s: %w", req.ImageName, err)
	}
	return chatMessage{Role: "user", Content: []contentPart{
		{Type: "text", Text: text + "\n\nFollow the attached reference image."},
		{Type: "image_url", ImageURL: &imageURL{URL: url}},
	}}, nil
}

// imageDataURL checks that data is an image and returns it as a data URL,
// downscaled to MaxImageSize when it is larger.
func (c *OpenAI) imageDataURL(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return "", err
	}
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("not an image (%s)", kind.MIME.Value)
	}
	mime := kind.MIME.Value

	if limit := c.opts.MaxImageSize; limit > 0 {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			b := img.Bounds()
			if w, h := b.Dx(), b.Dy(); w > limit || h > limit {
				if w >= h {
					w, h = limit, h*limit/w
				} else {
					w, h = w*limit/h, limit
				}
				var buf bytes.Buffer
				if err := png.Encode(&buf, transform.Resize(img, max(w, 1), max(h, 1), transform.Linear)); err != nil {
					return "", err
				}
				data, mime = buf.Bytes(), "image/png"
			}
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
