package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

const validReply = `{"neutral": "Vaccine cuts hospitalization risk by 90%",
 "sensationalist": "MIRACLE SHOT: vaccine all but ends hospital visits!",
 "omissive": "Vaccine lowers some risks",
 "manipulative": "Hospitals empty as only the vaccinated are spared"}`

type stubChatClient struct {
	reply      string
	err        error
	userPrompt string
	block      bool
}

func (s *stubChatClient) Complete(ctx context.Context, _, userPrompt string) (string, error) {
	s.userPrompt = userPrompt
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func TestParseHeadlinesToleratesProse(t *testing.T) {
	raw := "Sure! Here are your headlines:\n```json\n" + validReply + "\n```\nLet me know if you need more."

	set, err := parseHeadlines(raw)
	require.NoError(t, err)
	assert.Len(t, set, 4)
	assert.Equal(t, "Vaccine lowers some risks", set[models.BiasOmissive])
}

func TestParseHeadlinesStrayBraceAfterObject(t *testing.T) {
	set, err := parseHeadlines(validReply + "\nNote: keys are {label} names }")
	require.NoError(t, err)
	assert.Equal(t, "Vaccine cuts hospitalization risk by 90%", set[models.BiasNeutral])
}

func TestParseHeadlinesBraceInLeadingProse(t *testing.T) {
	for _, raw := range []string{
		"Here are the headlines {as requested}:\n" + validReply,
		"Using {label: text} pairs. {oops} " + validReply + " {done}",
	} {
		set, err := parseHeadlines(raw)
		require.NoError(t, err, raw)
		assert.Len(t, set, 4)
		assert.Equal(t, "Vaccine cuts hospitalization risk by 90%", set[models.BiasNeutral])
	}
}

func TestParseHeadlinesAcceptsOriginalKeys(t *testing.T) {
	raw := `{"Neutra": "a", "sensacionalista": "b", " omissiva ": "c", "MANIPULADORA": "d"}`

	set, err := parseHeadlines(raw)
	require.NoError(t, err)
	assert.Equal(t, models.HeadlineSet{
		models.BiasNeutral:        "a",
		models.BiasSensationalist: "b",
		models.BiasOmissive:       "c",
		models.BiasManipulative:   "d",
	}, set)
}

func TestParseHeadlinesFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no object", "I cannot help with that.", ErrGenerationFormat},
		{"empty", "", ErrGenerationFormat},
		{"closing brace only", "oops }", ErrGenerationFormat},
		{"unterminated object", "oops } {", ErrGenerationParse},
		{"no decodable object", "{not json} and {also not}", ErrGenerationParse},
		{"unquoted keys", "{neutral: a, sensationalist: b}", ErrGenerationParse},
		{"truncated", `{"neutral": "a", "sensationalist": }`, ErrGenerationParse},
		{"missing label", `{"neutral": "a", "sensationalist": "b", "omissive": "c"}`, ErrGenerationSchema},
		{"blank label", `{"neutral": "a", "sensationalist": "b", "omissive": "c", "manipulative": "  "}`, ErrGenerationSchema},
		{"non string label", `{"neutral": "a", "sensationalist": "b", "omissive": "c", "manipulative": 4}`, ErrGenerationSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseHeadlines(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateBuildsPromptForEveryLabel(t *testing.T) {
	client := &stubChatClient{reply: validReply}
	svc := NewHeadlineService(client, time.Second, zap.NewNop())

	set, err := svc.Generate(context.Background(), DefaultFacts[0])
	require.NoError(t, err)
	assert.Len(t, set, 4)

	assert.Contains(t, client.userPrompt, DefaultFacts[0])
	for _, label := range models.CanonicalOrder {
		assert.Contains(t, client.userPrompt, string(label))
	}
}

func TestGenerateRejectsEmptyFact(t *testing.T) {
	client := &stubChatClient{reply: validReply}
	svc := NewHeadlineService(client, time.Second, nil)

	_, err := svc.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidFact)
	assert.Empty(t, client.userPrompt)
}

func TestGenerateTimeout(t *testing.T) {
	svc := NewHeadlineService(&stubChatClient{block: true}, 10*time.Millisecond, nil)

	_, err := svc.Generate(context.Background(), DefaultFacts[1])
	assert.ErrorIs(t, err, ErrGenerationTimeout)
	assert.NotErrorIs(t, err, ErrGenerationFormat)
}

func TestGenerateSurfacesClientErrors(t *testing.T) {
	upstream := errors.New("boom")
	svc := NewHeadlineService(&stubChatClient{err: upstream}, time.Second, nil)

	_, err := svc.Generate(context.Background(), DefaultFacts[2])
	assert.ErrorIs(t, err, upstream)
}

func TestGenerateFormatError(t *testing.T) {
	svc := NewHeadlineService(&stubChatClient{reply: "no json here"}, time.Second, nil)

	_, err := svc.Generate(context.Background(), DefaultFacts[3])
	assert.ErrorIs(t, err, ErrGenerationFormat)
}
