package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/mocks"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/filekv"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/sqlkv"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 2,
			CookieName:             "tt_session",
			SessionSecret:          strings.Repeat("s", 32),
			SessionIdleMinutes:     30,
		},
		LLM: config.LLMConfig{
			Provider:        config.ProviderGemini,
			ModelName:       "gemini-2.5-flash",
			OpenAIModelName: "gpt-4o-mini",
		},
		History: config.HistoryConfig{
			Backend:  config.BackendMemory,
			Key:      "tube-to-textbook-history",
			Capacity: 10,
		},
	}
}

func newTestApplication(t *testing.T) (*application, *mocks.MockBackend) {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	raw, err := json.Marshal(mocks.SampleDocument(5))
	require.NoError(t, err)
	backend := &mocks.MockBackend{Response: string(raw)}

	app, err := assembleApplication(context.Background(), testConfig(), log, backend, store.NewMemoryStore())
	require.NoError(t, err)
	return app, backend
}

func TestOpenKVStore(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.HistoryConfig
		wantType interface{}
		wantErr  bool
	}{
		{
			name:     "memory",
			cfg:      config.HistoryConfig{Backend: config.BackendMemory},
			wantType: &store.MemoryStore{},
		},
		{
			name:     "file",
			cfg:      config.HistoryConfig{Backend: config.BackendFile, FilePath: filepath.Join(dir, "history.json")},
			wantType: &filekv.Store{},
		},
		{
			name:     "sqlite",
			cfg:      config.HistoryConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "history.db")},
			wantType: &sqlkv.Store{},
		},
		{
			name:    "file without path",
			cfg:     config.HistoryConfig{Backend: config.BackendFile},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.HistoryConfig{Backend: "etcd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeKV, err := openKVStore(context.Background(), tt.cfg, log)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, closeKV)
			assert.IsType(t, tt.wantType, kv)

			require.NoError(t, kv.Set(context.Background(), "k", "v"))
			value, ok, err := kv.Get(context.Background(), "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", value)

			assert.NoError(t, closeKV())
		})
	}
}

func TestAssembleApplication_BadPromptTemplate(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.LLM.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")

	_, err := assembleApplication(context.Background(), cfg, log, &mocks.MockBackend{}, store.NewMemoryStore())
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestRouter_GenerateAndHistory(t *testing.T) {
	app, backend := newTestApplication(t)
	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	body := `{"sourceUrl":"https://youtu.be/dQw4w9WgXcQ","transcript":"Photosynthesis converts light into chemical energy.","questionCount":5}`
	resp, err := client.Post(srv.URL+"/api/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	assert.Len(t, backend.Requests(), 1)

	var view map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "succeeded", view["state"])
	assert.Equal(t, "dQw4w9WgXcQ", view["videoId"])

	histResp, err := client.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	defer histResp.Body.Close()
	require.Equal(t, http.StatusOK, histResp.StatusCode)

	var list struct {
		Entries  []map[string]interface{} `json:"entries"`
		Capacity int                      `json:"capacity"`
	}
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&list))
	assert.Len(t, list.Entries, 1)
	assert.Equal(t, 10, list.Capacity)
	assert.Equal(t, 1, app.sessions.Len())
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApplication(t)

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies(), "Health checks do not start sessions")

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "mock", health["provider"])
	assert.Equal(t, config.BackendMemory, health["historyBackend"])
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	app, _ := newTestApplication(t)

	closed := false
	app.closeKV = func() error {
		closed = true
		return nil
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listener, app.setupRouter()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, closed)
}
