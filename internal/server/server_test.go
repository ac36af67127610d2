package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/pipeline"
)

type scriptedProvider struct {
	content string
	err     error
	calls   int
}

func (p *scriptedProvider) Name() string                   { return "scripted" }
func (p *scriptedProvider) Ping(ctx context.Context) error { return nil }

func (p *scriptedProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.content}, nil
}

type testServer struct {
	*httptest.Server
	provider *scriptedProvider
	metrics  *Metrics
}

func newTestServer(t *testing.T, provider *scriptedProvider) *testServer {
	t.Helper()
	t.Setenv("ZHIPUAI_API_KEY", "")
	t.Setenv("ZHIPU_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.APIKey = "sk-test-1234567890"

	metrics := NewMetrics("mindppt_test")
	guard := llm.NewGuard(llm.DefaultGuardConfig(), metrics.BreakerChanged)
	p := pipeline.New(
		func() (llm.Provider, error) { return provider, nil },
		pipeline.WithGuard(guard),
		pipeline.WithObserver(metrics.ObserveLLM),
	)
	srv := New(Options{
		Config:   cfg,
		Pipeline: p,
		Metrics:  metrics,
		Guard:    guard,
		Now:      func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, provider: provider, metrics: metrics}
}

func (ts *testServer) post(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	resp, err := http.Post(ts.URL+path, "application/json", &buf)
	require.NoError(t, err)
	return decode(t, resp)
}

func (ts *testServer) get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) (int, map[string]any) {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

var validText = strings.Repeat("本季度营收同比增长百分之二十，新产品线贡献显著。", 3)

const analysisAnswer = `{"coreTopic":"季度营收","keyPoints":["营收增长","新产品"],
"mainStructure":{"suggestedSections":["回顾","展望"],"estimatedSlides":8,"complexity":"medium"},
"summary":"增长明显","extractedKeywords":["营收"]}`

const outlineAnswer = `{"title":"季度汇报","items":[
{"id":"1","title":"营收回顾","level":1,"content":["同比增长20%"],"children":[
{"id":"1-1","title":"产品对比","level":2,"content":["旧产品","新产品"]}]}]}`

func TestAnalyzeText(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{content: analysisAnswer})

	status, body := ts.post(t, "/api/analyze-text", map[string]string{"text": validText, "style": "investor-pitch"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	result := body["result"].(map[string]any)
	assert.Equal(t, "季度营收", result["coreTopic"])
	suggestions := result["suggestions"].(map[string]any)
	assert.Equal(t, "investor-pitch", suggestions["recommendedStyle"])
	assert.Equal(t, "内容适中，建议使用数据对比和流程图展示重点", suggestions["visualApproach"])
}

func TestAnalyzeTextValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{name: "missing text", body: map[string]string{}, wantMsg: pipeline.MsgTextTooShort},
		{name: "short text", body: map[string]string{"text": "太短"}, wantMsg: pipeline.MsgTextTooShort},
		{name: "long text", body: map[string]string{"text": strings.Repeat("长", 6000)}, wantMsg: pipeline.MsgTextTooLong},
		{name: "unknown style", body: map[string]string{"text": validText, "style": "disco"}, wantMsg: "不支持的演示风格: disco"},
		{name: "malformed json", body: `{"text":`, wantMsg: msgBadBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &scriptedProvider{content: analysisAnswer})

			status, body := ts.post(t, "/api/analyze-text", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.Equal(t, "VALIDATION", body["code"])
			assert.Zero(t, ts.provider.calls, "no model call for invalid input")
		})
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		content    string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "bad key",
			err:        &llm.StatusError{Provider: "zhipu", Status: http.StatusUnauthorized},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    apierr.MsgCredential,
		},
		{
			name:       "quota",
			err:        fmt.Errorf("zhipu: insufficient quota"),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    apierr.MsgQuota,
		},
		{
			name:       "no json",
			content:    "我不太明白",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    apierr.MsgParse,
		},
		{
			name:       "unknown",
			err:        io.ErrUnexpectedEOF,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    pipeline.FallbackAnalyze,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &scriptedProvider{content: tt.content, err: tt.err})

			status, body := ts.post(t, "/api/analyze-text", map[string]string{"text": validText})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestGenerateOutline(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{content: outlineAnswer})

	status, body := ts.post(t, "/api/generate-outline", map[string]any{
		"text":  validText,
		"style": "executive-report",
		"analysisResult": map[string]any{
			"coreTopic":     "季度营收",
			"keyPoints":     []string{"营收增长"},
			"mainStructure": map[string]any{"suggestedSections": []string{"回顾"}},
		},
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	o := data["outline"].(map[string]any)
	assert.Equal(t, "季度汇报", o["title"])
	item := o["items"].([]any)[0].(map[string]any)
	assert.NotEmpty(t, item["suggestedIcon"])
	assert.NotEmpty(t, item["visualCue"])
	assert.True(t, strings.HasPrefix(data["mindmapMarkdown"].(string), "# 季度汇报\n## 营收回顾"))

	status, body = ts.post(t, "/api/generate-outline", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pipeline.MsgTextEmpty, body["error"])

	status, body = ts.post(t, "/api/generate-outline", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pipeline.MsgTextEmpty, body["error"])
}

func TestGeneratePPT(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{content: outlineAnswer})

	_, body := ts.post(t, "/api/generate-outline", map[string]string{"text": validText})
	o := body["data"].(map[string]any)["outline"]

	status, body := ts.post(t, "/api/generate-ppt", map[string]any{"outline": o, "style": "executive-report"})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "季度汇报_高管汇报.pptx", data["filename"])
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.presentationml.presentation", data["contentType"])
	assert.EqualValues(t, 3, data["slideCount"])

	raw, err := base64.StdEncoding.DecodeString(data["base64"].(string))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))

	status, body = ts.post(t, "/api/generate-ppt", map[string]any{"style": "executive-report"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pipeline.MsgOutlineAbsent, body["error"])

	flat := `{"outline":{"title":"x","items":[{"title":"a","level":1,"children":[{"title":"b","level":1}]}]}}`
	status, body = ts.post(t, "/api/generate-ppt", flat)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, pipeline.MsgOutlineAbsent, body["error"])
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestMissingCredential(t *testing.T) {
	t.Setenv("ZHIPUAI_API_KEY", "")
	t.Setenv("ZHIPU_API_KEY", "")

	cfg := config.DefaultConfig()
	p := pipeline.New(func() (llm.Provider, error) { return llm.NewProvider(cfg) })
	ts := httptest.NewServer(New(Options{Config: cfg, Pipeline: p}).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/api/analyze-text", "application/json",
		strings.NewReader(fmt.Sprintf(`{"text":%q}`, validText)))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, apierr.MsgCredential, body["error"])
	assert.Equal(t, "CREDENTIAL", body["code"])

	// A key exported after startup is picked up by the next call.
	t.Setenv("ZHIPUAI_API_KEY", "sk-late-1234567890")
	prov, err := llm.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "zhipu", prov.Name())
}

func TestStyles(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{})

	status, body := ts.get(t, "/api/styles")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "executive-report", data["default"])

	total := 0
	for _, g := range data["categories"].([]any) {
		group := g.(map[string]any)
		assert.NotEmpty(t, group["id"])
		total += len(group["styles"].([]any))
	}
	assert.Equal(t, 15, total)
}

func TestTestEnv(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{})

	status, body := ts.get(t, "/api/test-env")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "2024-01-02T03:04:05Z", data["timestamp"])
	env := data["environment"].(map[string]any)
	assert.Equal(t, true, env["hasApiKey"])
	assert.Equal(t, "sk-test-12...", env["apiKeyPrefix"])
	assert.Equal(t, "zhipu", env["provider"])
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{content: analysisAnswer})

	status, body := ts.get(t, "/health")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "closed", body["breaker"])

	status, _ = ts.post(t, "/api/analyze-text", map[string]string{"text": validText})
	require.Equal(t, http.StatusOK, status)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(text), `mindppt_test_http_requests_total{method="POST",route="/api/analyze-text",status="200"} 1`)
	assert.Contains(t, string(text), `mindppt_test_llm_calls_total{op="analyze",outcome="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, &scriptedProvider{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze-text", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
