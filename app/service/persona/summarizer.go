package persona

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"heartflow/app/service/conversation"

	_ "embed"

	"golang.org/x/sync/singleflight"
)

//go:embed summarize_prompt_template.txt
var summarizePromptTemplate string

const (
	// Personas shorter than this need no compression.
	minSummarizeLength = 50
	// Anything at or below this is treated as a failed summarization.
	minSummaryLength = 10
)

// ModelCaller is the judge-model collaborator the summarizer shares with
// the decision engine.
type ModelCaller interface {
	TextChat(ctx context.Context, prompt string, contexts []conversation.Turn) (string, error)
}

// Summarizer compresses long persona prompts before they are embedded into
// the judge prompt, cached by content hash for the process lifetime. The
// cache is unbounded on purpose: persona churn is low and entries are tiny.
type Summarizer struct {
	caller ModelCaller

	mu    sync.RWMutex
	cache map[string]cacheEntry
	group singleflight.Group
}

type cacheEntry struct {
	original string
	summary  string
}

func NewSummarizer(caller ModelCaller) *Summarizer {
	return &Summarizer{
		caller: caller,
		cache:  make(map[string]cacheEntry),
	}
}

// Summarize returns a compact form of the persona text. It degrades
// gracefully: any model or parse failure yields the original text unchanged,
// the caller is never blocked by a broken summarization.
func (s *Summarizer) Summarize(ctx context.Context, original string) string {
	if len(original) < minSummarizeLength {
		return original
	}

	hash := contentHash(original)

	s.mu.RLock()
	entry, ok := s.cache[hash]
	s.mu.RUnlock()

	if ok && entry.original == original {
		return entry.summary
	}

	result, _, _ := s.group.Do(hash, func() (any, error) {
		return s.summarizeUncached(ctx, hash, original), nil
	})

	return result.(string)
}

func (s *Summarizer) summarizeUncached(ctx context.Context, hash, original string) string {
	prompt := strings.ReplaceAll(summarizePromptTemplate, "{persona}", original)

	raw, err := s.caller.TextChat(ctx, prompt, nil)
	if err != nil {
		slog.Warn("persona summarization failed, using original text", "error", err)
		return original
	}

	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "json")
	raw = strings.TrimSpace(raw)

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err = json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("persona summary is not valid JSON, using original text",
			"error", err,
			"raw", raw)
		return original
	}

	summary := strings.TrimSpace(parsed.Summary)
	if len(summary) <= minSummaryLength {
		slog.Warn("persona summary is too short, using original text", "summary", summary)
		return original
	}

	s.mu.Lock()
	s.cache[hash] = cacheEntry{original: original, summary: summary}
	s.mu.Unlock()

	slog.Debug("persona summarized",
		"original_len", len(original),
		"summary_len", len(summary))

	return summary
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
