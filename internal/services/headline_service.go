package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

const DefaultGenerationTimeout = 30 * time.Second

const headlineSystemPrompt = "You are a headline generator. You rewrite factual statements as news headlines with a requested bias and answer with JSON only."

// labelAliases maps the keys the generator may use onto bias labels.
var labelAliases = map[string]models.BiasLabel{
	"neutral":         models.BiasNeutral,
	"neutra":          models.BiasNeutral,
	"sensationalist":  models.BiasSensationalist,
	"sensacionalista": models.BiasSensationalist,
	"omissive":        models.BiasOmissive,
	"omissiva":        models.BiasOmissive,
	"manipulative":    models.BiasManipulative,
	"manipuladora":    models.BiasManipulative,
}

// HeadlineService turns a fact into one headline per bias label.
type HeadlineService struct {
	client  ChatClient
	timeout time.Duration
	logger  *zap.Logger
}

func NewHeadlineService(client ChatClient, timeout time.Duration, logger *zap.Logger) *HeadlineService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeadlineService{client: client, timeout: timeout, logger: logger}
}

func (s *HeadlineService) Generate(ctx context.Context, fact string) (models.HeadlineSet, error) {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return nil, ErrInvalidFact
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	raw, err := s.client.Complete(ctx, headlineSystemPrompt, buildHeadlinePrompt(fact))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("headline generation timed out",
				zap.String("fact", fact),
				zap.Duration("timeout", s.timeout),
			)
			return nil, fmt.Errorf("%w after %s", ErrGenerationTimeout, s.timeout)
		}
		return nil, fmt.Errorf("generate headlines: %w", err)
	}

	s.logger.Debug("generated headlines",
		zap.String("fact", fact),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("raw", truncate(raw, 2048)),
	)

	set, err := parseHeadlines(raw)
	if err != nil {
		s.logger.Warn("unusable generator reply",
			zap.String("fact", fact),
			zap.Error(err),
			zap.String("raw", truncate(raw, 512)),
		)
		return nil, err
	}
	return set, nil
}

func buildHeadlinePrompt(fact string) string {
	var sb strings.Builder
	sb.WriteString("Based on the objective fact below, write 4 headlines, each with a specific bias.\n\n")
	sb.WriteString(fmt.Sprintf("Fact: %q\n\n", fact))
	for i, label := range models.CanonicalOrder {
		sb.WriteString(fmt.Sprintf("%d. %s: %s.\n", i+1, label, models.Descriptions[label]))
	}
	sb.WriteString("\nWrite every headline in the same language as the fact.\n")
	sb.WriteString("Answer with a single JSON object with exactly these keys: ")
	keys := make([]string, 0, len(models.CanonicalOrder))
	for _, label := range models.CanonicalOrder {
		keys = append(keys, string(label))
	}
	sb.WriteString(strings.Join(keys, ", "))
	sb.WriteString(". Each value is the headline text.\n")
	return sb.String()
}

// parseHeadlines locates the first JSON object embedded in raw and checks
// that it carries a headline for every label.
func parseHeadlines(raw string) (models.HeadlineSet, error) {
	decoded, err := firstJSONObject(raw)
	if err != nil {
		return nil, err
	}

	set := make(models.HeadlineSet, len(models.CanonicalOrder))
	for key, value := range decoded {
		label, ok := labelAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		text, ok := value.(string)
		if !ok {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			set[label] = text
		}
	}

	var missing []string
	for _, label := range models.CanonicalOrder {
		if _, ok := set[label]; !ok {
			missing = append(missing, string(label))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrGenerationSchema, strings.Join(missing, ", "))
	}
	return set, nil
}

// firstJSONObject tries a decode at every '{' in raw and returns the first
// one that yields an object. Text after the object is ignored.
func firstJSONObject(raw string) (map[string]any, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, ErrGenerationFormat
	}

	var firstErr error
	for start >= 0 {
		var decoded map[string]any
		err := json.NewDecoder(strings.NewReader(raw[start:])).Decode(&decoded)
		if err == nil {
			return decoded, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		next := strings.IndexByte(raw[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, fmt.Errorf("%w: %v", ErrGenerationParse, firstErr)
}
