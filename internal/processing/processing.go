package processing

import (
	"context"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

const (
	defaultEndpoint    = "http://localhost:5000"
	defaultHTTPTimeout = 60 * time.Second

	// FallbackErrorMessage is shown when a failed response carries no error text.
	FallbackErrorMessage = "Failed to process text"
)

// Option names as they appear on the wire.
const (
	OptionParaphrase      = "paraphrase"
	OptionRemoveAIPhrases = "remove_ai_phrases"
	OptionHumanize        = "humanize"
)

// OptionOrder is the canonical display order for known options.
var OptionOrder = []string{
	OptionParaphrase,
	OptionRemoveAIPhrases,
	OptionHumanize,
}

// Config describes how to build a processing client.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the remote text-processing service.
type Client interface {
	Process(ctx context.Context, req Request) (Result, error)
	Health(ctx context.Context) (Health, error)
	Endpoint() string
}

// Options mirrors the three checkbox toggles of the form.
type Options struct {
	Paraphrase      bool `json:"paraphrase"`
	RemoveAIPhrases bool `json:"remove_ai_phrases"`
	Humanize        bool `json:"humanize"`
}

// Any reports whether at least one option is selected.
func (o Options) Any() bool {
	return o.Paraphrase || o.RemoveAIPhrases || o.Humanize
}

// Get returns the value of the named option.
func (o Options) Get(name string) bool {
	switch name {
	case OptionParaphrase:
		return o.Paraphrase
	case OptionRemoveAIPhrases:
		return o.RemoveAIPhrases
	case OptionHumanize:
		return o.Humanize
	default:
		return false
	}
}

// Toggle flips the named option and returns the updated set.
func (o Options) Toggle(name string) Options {
	switch name {
	case OptionParaphrase:
		o.Paraphrase = !o.Paraphrase
	case OptionRemoveAIPhrases:
		o.RemoveAIPhrases = !o.RemoveAIPhrases
	case OptionHumanize:
		o.Humanize = !o.Humanize
	}
	return o
}

// Request is the body sent to POST /process.
type Request struct {
	Text    string  `json:"text"`
	Options Options `json:"options"`
}

// Result is the decoded success body of POST /process.
type Result struct {
	ProcessedText  string          `json:"processed_text"`
	OptionsApplied map[string]bool `json:"options_applied"`
	OriginalText   string          `json:"original_text,omitempty"`
}

// Health is the body returned by GET /health.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return FallbackErrorMessage
}

// OptionLabel maps an option name to its human readable label.
// Unknown names are returned unchanged.
func OptionLabel(name string) string {
	switch name {
	case OptionParaphrase:
		return "Paraphrased"
	case OptionRemoveAIPhrases:
		return "AI phrases removed"
	case OptionHumanize:
		return "Humanized"
	default:
		return name
	}
}

// AppliedLabels lists the labels of every option reported as applied, known
// options first in canonical order, then unknown ones alphabetically.
func AppliedLabels(applied map[string]bool) []string {
	labels := make([]string, 0, len(applied))
	for _, name := range OptionOrder {
		if applied[name] {
			labels = append(labels, OptionLabel(name))
		}
	}
	var extra []string
	for name, on := range applied {
		if on && !isKnownOption(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		labels = append(labels, OptionLabel(name))
	}
	return labels
}

func isKnownOption(name string) bool {
	for _, known := range OptionOrder {
		if known == name {
			return true
		}
	}
	return false
}

// NewFromEnv builds a client from cfg, falling back to REPHRASE_ENDPOINT.
func NewFromEnv(cfg Config) (Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		if env := os.Getenv("REPHRASE_ENDPOINT"); env != "" {
			endpoint = env
		} else {
			endpoint = defaultEndpoint
		}
	}
	validator, err := newResponseValidator()
	if err != nil {
		return nil, err
	}
	return &httpClient{
		endpoint:  strings.TrimRight(endpoint, "/"),
		client:    pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		validator: validator,
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
