package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwehrli/swisscv/internal/generation"
	"github.com/mwehrli/swisscv/internal/jobs"
	"github.com/mwehrli/swisscv/internal/llm"
)

// fakeLLM returns canned responses in order, repeating the last one once the
// queue is exhausted.
type fakeLLM struct {
	texts []string
	text  string
	err   error
	calls int
}

func (f *fakeLLM) Generate(context.Context, string, llm.GenerateOptions) (*llm.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	text := f.text
	if len(f.texts) > 0 {
		i := f.calls
		if i >= len(f.texts) {
			i = len(f.texts) - 1
		}
		text = f.texts[i]
	}
	f.calls++
	return &llm.Result{Text: text, Usage: llm.Usage{TotalTokens: 42}}, nil
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func newTestServer(client llm.Client) *Server {
	return &Server{
		llmClient:  client,
		jobsClient: jobs.NewClient("id", "key"),
		validator:  validator.New(),
		workflow:   generation.NewWorkflow(client, nil, generation.Config{}),
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

const requirementsJSON = `{"skills":["Go","Kubernetes"],"responsibilities":["Run production systems"],"qualifications":[],"niceToHaves":[]}`

func TestHandleExtractRequirements(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	longDescription := strings.Repeat("We are hiring a Go platform engineer in Zürich. ", 5)
	rec := doRequest(t, s, http.MethodPost, "/requirements",
		`{"jobDescription":`+mustJSON(t, longDescription)+`,"locale":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Requirements struct {
			Skills []string `json:"skills"`
		} `json:"requirements"`
		IsInsufficient bool  `json:"isInsufficient"`
		TokensUsed     int32 `json:"tokensUsed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Go", "Kubernetes"}, resp.Requirements.Skills)
	assert.Equal(t, int32(42), resp.TokensUsed)
	assert.False(t, resp.IsInsufficient)
}

func TestHandleExtractRequirements_MissingField(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	rec := doRequest(t, s, http.MethodPost, "/requirements", `{"locale":"en"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "JobDescription")
}

func TestHandleExtractRequirements_InvalidLocale(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	rec := doRequest(t, s, http.MethodPost, "/requirements",
		`{"jobDescription":"A description that is certainly long enough for extraction to run.","locale":"es"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractRequirements_ModelGarbage(t *testing.T) {
	s := newTestServer(&fakeLLM{text: "I could not process this job description."})

	rec := doRequest(t, s, http.MethodPost, "/requirements",
		`{"jobDescription":"A description that is certainly long enough for extraction to run."}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleAnalyze_WithInlineRequirements(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	body := `{
		"resume": {"summary": "Go engineer running production systems on Kubernetes.", "skills": [{"category":"Tech","items":["Go","Kubernetes"]}]},
		"requirements": {"skills":["Go","Kubernetes"],"responsibilities":[],"qualifications":[],"niceToHaves":[]}
	}`
	rec := doRequest(t, s, http.MethodPost, "/analyze", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Analysis struct {
			Score          int  `json:"score"`
			IsInsufficient bool `json:"isInsufficient"`
		} `json:"analysis"`
		TokensUsed int32 `json:"tokensUsed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Analysis.Score)
	assert.False(t, resp.Analysis.IsInsufficient)
	// No extraction happened, so no tokens were spent.
	assert.Zero(t, resp.TokensUsed)
}

func TestHandleAnalyze_RequiresJobDescriptionOrRequirements(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"resume":{"summary":"x"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate(t *testing.T) {
	// First call extracts requirements, second generates content covering them.
	s := newTestServer(&fakeLLM{texts: []string{
		`{"skills":["Go"],"responsibilities":[],"qualifications":[],"niceToHaves":[]}`,
		`{"summary":"Go engineer shipping production services.","experience":[],"skills":[{"category":"Tech","items":["Go"]}],"projects":[]}`,
	}})

	rec := doRequest(t, s, http.MethodPost, "/generate",
		`{"jobDescription":"We need a Go engineer for our platform team in Basel.","locale":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Analysis struct {
			Score int `json:"score"`
		} `json:"qualityAnalysis"`
		Iterations int `json:"iterations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.Iterations, 1)
}

func TestHandleGenerate_InvalidUserID(t *testing.T) {
	s := newTestServer(&fakeLLM{text: requirementsJSON})

	rec := doRequest(t, s, http.MethodPost, "/generate",
		`{"jobDescription":"A role.","userId":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTransform_Summary(t *testing.T) {
	s := newTestServer(&fakeLLM{text: "Accomplished Go engineer."})

	rec := doRequest(t, s, http.MethodPost, "/transform/summary", `{"rawSummary":"i write go"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Accomplished Go engineer.")
}

func TestHandleTransform_UnknownOp(t *testing.T) {
	s := newTestServer(&fakeLLM{text: "x"})

	rec := doRequest(t, s, http.MethodPost, "/transform/embellish", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTransform_Translate_InvalidTarget(t *testing.T) {
	s := newTestServer(&fakeLLM{text: "x"})

	rec := doRequest(t, s, http.MethodPost, "/transform/translate",
		`{"summary":"Hello","targetLanguage":"jp"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAdapt(t *testing.T) {
	s := newTestServer(&fakeLLM{text: `{"patches":{"summary":"Better"},"analysis":{"matchScore":80,"keyGaps":[],"strengths":["Go"]}}`})

	body := `{
		"resume": {"summary": "Go engineer."},
		"jobDescription": "Platform role",
		"jobTitle": "Platform Engineer",
		"company": "Acme AG"
	}`
	rec := doRequest(t, s, http.MethodPost, "/adapt", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matchScore":80`)
}

func TestHandleJobsSearch_BadPages(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	rec := doRequest(t, s, http.MethodGet, "/jobs/search?pages=zero", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleJobsCities(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	rec := doRequest(t, s, http.MethodGet, "/jobs/cities", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Zürich")
}

func TestHandleGenerationLogs_NoDatabase(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	rec := doRequest(t, s, http.MethodGet, "/users/550e8400-e29b-41d4-a716-446655440000/generation-logs", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	rec := doRequest(t, s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func mustJSON(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}
