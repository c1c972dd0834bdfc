package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/dmitrijs2005/nichescope/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type scriptedCompleter struct {
	mu      sync.Mutex
	steps   []func() (string, error)
	calls   int
	lastReq Request
}

func (s *scriptedCompleter) Complete(_ context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReq = req
	step := s.steps[s.calls]
	s.calls++
	return step()
}

func fail(msg string) func() (string, error) {
	return func() (string, error) { return "", errors.New(msg) }
}

func answer(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (r recordingLogger) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, logEntry{level, msg, args})
}

func (r recordingLogger) Debug(_ context.Context, msg string, args ...any) { r.add("debug", msg, args) }
func (r recordingLogger) Info(_ context.Context, msg string, args ...any)  { r.add("info", msg, args) }
func (r recordingLogger) Warn(_ context.Context, msg string, args ...any)  { r.add("warn", msg, args) }
func (r recordingLogger) Error(_ context.Context, msg string, args ...any) { r.add("error", msg, args) }
func (r recordingLogger) With(...any) logging.Logger                       { return r }

func (r recordingLogger) delays() []time.Duration {
	var out []time.Duration
	for _, e := range *r.entries {
		if e.level != "warn" {
			continue
		}
		for i := 0; i+1 < len(e.args); i += 2 {
			if e.args[i] == "delay" {
				out = append(out, e.args[i+1].(time.Duration))
			}
		}
	}
	return out
}

func payload(t *testing.T, topic string, n int) string {
	t.Helper()
	res := models.AnalysisResult{Topic: topic}
	for i := 0; i < n; i++ {
		res.Niches = append(res.Niches, models.Niche{
			ID:               fmt.Sprintf("niche-%02d", i),
			Name:             fmt.Sprintf("Niche %d", i),
			OpportunityScore: 90 - i,
			TrendData:        []models.TrendPoint{{Month: "Jan", Value: 10}},
		})
	}
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return string(b)
}

func testOptions() Options {
	return Options{
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash",
		Language:   "Brazilian Portuguese",
		NicheCount: 10,
		Retry:      retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond},
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	c := &scriptedCompleter{}
	opts := testOptions()
	opts.APIKey = ""

	_, err := New(opts, c, nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = NewGemini(context.Background(), opts, nil)
	assert.ErrorIs(t, err, common.ErrConfiguration)
	assert.Zero(t, c.calls)
}

func TestAnalyze_RecoversAfterTwoFailures(t *testing.T) {
	body := payload(t, "Café", 10)
	c := &scriptedCompleter{steps: []func() (string, error){
		fail("unavailable"),
		fail("quota"),
		answer(body),
	}}
	log := newRecordingLogger()

	client, err := New(testOptions(), c, log)
	require.NoError(t, err)

	res, err := client.Analyze(context.Background(), "Café")
	require.NoError(t, err)
	assert.Equal(t, 3, c.calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, log.delays())

	var want models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(body), &want))
	Normalize("Café", &want, time.Now())
	assert.Equal(t, want, *res)
	assert.Len(t, res.Niches, 10)
}

func TestAnalyze_ExhaustedReturnsLastError(t *testing.T) {
	last := errors.New("third failure")
	c := &scriptedCompleter{steps: []func() (string, error){
		fail("first failure"),
		fail("second failure"),
		func() (string, error) { return "", last },
		answer("{}"),
	}}
	log := newRecordingLogger()

	client, err := New(testOptions(), c, log)
	require.NoError(t, err)

	res, err := client.Analyze(context.Background(), "Café")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, last)
	assert.ErrorIs(t, err, common.ErrAnalysisFailure)
	assert.Equal(t, 3, c.calls, "no fourth attempt")
	assert.Len(t, log.delays(), 2)
}

func TestAnalyze_EmptyAndMalformedResponsesAreRetried(t *testing.T) {
	c := &scriptedCompleter{steps: []func() (string, error){
		answer(""),
		answer("{not json"),
		answer(payload(t, "Pet", 2)),
	}}

	client, err := New(testOptions(), c, nil)
	require.NoError(t, err)

	res, err := client.Analyze(context.Background(), "Pet")
	require.NoError(t, err)
	assert.Len(t, res.Niches, 2)
	assert.Equal(t, 3, c.calls)
}

func TestAnalyze_EmptyResponseExhausted(t *testing.T) {
	c := &scriptedCompleter{steps: []func() (string, error){answer(""), answer(" "), answer("")}}

	client, err := New(testOptions(), c, nil)
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "Pet")
	assert.ErrorIs(t, err, common.ErrEmptyResponse)
}

func TestAnalyze_EmptyTopic(t *testing.T) {
	c := &scriptedCompleter{}
	client, err := New(testOptions(), c, nil)
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrEmptyTopic)
	assert.Zero(t, c.calls)
}

func TestAnalyze_Request(t *testing.T) {
	c := &scriptedCompleter{steps: []func() (string, error){answer(payload(t, "Home gardening", 1))}}
	client, err := New(testOptions(), c, nil)
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "  Home gardening ")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", c.lastReq.Model)
	assert.Contains(t, c.lastReq.Prompt, `"Home gardening"`)
	assert.Contains(t, c.lastReq.Prompt, "Identify 10 specific micro-niches")
	assert.Contains(t, c.lastReq.Prompt, "Brazilian Portuguese")
	require.NotNil(t, c.lastReq.Schema)
	assert.ElementsMatch(t, []string{"topic", "niches"}, c.lastReq.Schema.Required)
}

func TestAnalyze_BackfillsShortIDs(t *testing.T) {
	body := `{"topic":"","niches":[
		{"id":"abc","name":"A"},
		{"id":"pet-long-id","name":"B"},
		{"id":"","name":"C"}
	]}`
	c := &scriptedCompleter{steps: []func() (string, error){answer(body)}}
	client, err := New(testOptions(), c, nil)
	require.NoError(t, err)

	orig := now
	now = func() time.Time { return time.UnixMilli(1700000000000) }
	t.Cleanup(func() { now = orig })

	res, err := client.Analyze(context.Background(), "Pet")
	require.NoError(t, err)
	assert.Equal(t, "Pet", res.Topic)
	assert.Equal(t, "pet-0-1700000000000", res.Niches[0].ID)
	assert.Equal(t, "pet-long-id", res.Niches[1].ID)
	assert.Equal(t, "pet-2-1700000000000", res.Niches[2].ID)
}

func TestAnalyze_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &scriptedCompleter{steps: []func() (string, error){
		func() (string, error) { cancel(); return "", errors.New("aborted") },
	}}
	opts := testOptions()
	opts.Retry.BaseDelay = time.Hour

	client, err := New(opts, c, nil)
	require.NoError(t, err)

	_, err = client.Analyze(ctx, "Pet")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, common.ErrAnalysisFailure)
	assert.Equal(t, 1, c.calls)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Café", 5, "English")
	assert.Contains(t, p, `"Café"`)
	assert.Contains(t, p, "Identify 5 specific micro-niches")
	assert.Contains(t, p, "MUST be written in English")
	assert.True(t, strings.Contains(p, "highest opportunityScore"))
}
