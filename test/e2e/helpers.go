//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloo-solutions/docsum/internal/api/handlers"
	"github.com/cloo-solutions/docsum/internal/repository"
	"github.com/cloo-solutions/docsum/internal/server"
	"github.com/cloo-solutions/docsum/internal/service"
	"github.com/cloo-solutions/docsum/internal/storage"
	"github.com/cloo-solutions/docsum/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// fakeGenerator stands in for the hosted model. It records every chunk and
// answers with a deterministic summary.
type fakeGenerator struct {
	mu     sync.Mutex
	chunks []string
}

func (g *fakeGenerator) Generate(ctx context.Context, text string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chunks = append(g.chunks, text)
	return fmt.Sprintf("summary of %d words", len(strings.Fields(text))), nil
}

func (g *fakeGenerator) Chunks() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.chunks...)
}

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	OutputDir    string
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	Generator    *fakeGenerator
	ServerURL    string
	ServerCloser func()
	BinaryDir    string
	HTTPClient   *http.Client
}

// SetupE2EEnv starts a server that writes summaries to a temporary directory.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	env := newEnv(t)
	env.OutputDir = filepath.Join(t.TempDir(), "output")
	env.start(storage.NewFileStore(env.OutputDir))
	return env
}

// SetupE2EEnvWithPostgres starts a server backed by a PostgreSQL container.
func SetupE2EEnvWithPostgres(t *testing.T) *E2ETestEnv {
	env := newEnv(t)
	env.PostgresC = testutil.NewPostgresContainer(env.Ctx, t)
	env.Pool = testutil.NewTestPool(env.Ctx, t, env.PostgresC)
	env.start(repository.NewSummaryRepository(env.Pool))
	return env
}

func newEnv(t *testing.T) *E2ETestEnv {
	return &E2ETestEnv{
		T:          t,
		Ctx:        context.Background(),
		Generator:  &fakeGenerator{},
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *E2ETestEnv) start(store service.SummaryStore) {
	port, err := getFreePort()
	if err != nil {
		e.T.Fatalf("failed to get free port: %v", err)
	}
	e.ServerURL, e.ServerCloser = startServer(e.T, store, e.Generator, port)
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// BuildBinaries builds the docsum CLI
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "docsum-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "docsum"), "./cmd/docsum")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build docsum: %v\n%s", err, out)
	}
}

// RunDocsum runs the docsum CLI command against the test server
func (e *E2ETestEnv) RunDocsum(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "docsum"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), fmt.Sprintf("DOCSUM_API_URL=%s", e.ServerURL))
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Response is a decoded HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Message returns the "message" field of an error response.
func (r *Response) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(r.Body, &body)
	return body.Message
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, e.ServerURL+path, nil)
	if err != nil {
		return nil, err
	}
	return e.do(req)
}

// Upload sends content as a multipart file under field.
func (e *E2ETestEnv) Upload(method, path, field, filename string, content []byte) (*Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, e.ServerURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func (e *E2ETestEnv) do(req *http.Request) (*Response, error) {
	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, store service.SummaryStore, gen *fakeGenerator, port int) (string, func()) {
	segmenter, err := service.NewSegmenter()
	if err != nil {
		t.Fatalf("failed to load sentence model: %v", err)
	}

	summarySvc := service.NewSummaryService(store, gen, segmenter, service.SummaryServiceConfig{
		ChunkSize: service.DefaultChunkSize,
	})

	router := server.NewRouter(server.RouterConfig{
		SummaryHandler: handlers.NewSummaryHandler(summarySvc, zap.NewNop()),
		Logger:         zap.NewNop(),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
