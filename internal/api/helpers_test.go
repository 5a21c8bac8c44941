package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kdimtricp/acholiflixx/internal/agent"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/checkout"
	"github.com/kdimtricp/acholiflixx/internal/ingest"
	"github.com/kdimtricp/acholiflixx/internal/playback"
	"github.com/kdimtricp/acholiflixx/internal/storage"
)

type TestServer struct {
	Server     *httptest.Server
	App        *App
	ArtworkDir string
	StagingDir string
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()

	artworkDir := t.TempDir()
	stagingDir := t.TempDir()

	artwork, err := storage.NewLocalStorage(artworkDir)
	if err != nil {
		t.Fatalf("Failed to create artwork storage: %v", err)
	}
	staging, err := storage.NewLocalStorage(stagingDir)
	if err != nil {
		t.Fatalf("Failed to create staging storage: %v", err)
	}

	app := &App{
		Catalog: catalog.NewProvider(catalog.NewStaticSource(), nil),
		// A long tick keeps the clock from moving during a test.
		Players:       playback.NewManager(playback.ManagerConfig{TickInterval: time.Hour}, nil, nil),
		Checkout:      checkout.NewService(checkout.SimulatedGateway{}, nil, nil),
		Agents:        agent.NewService(agent.SimulatedCRM{}, nil, nil),
		Uploads:       ingest.NewService(staging, ingest.SimulatedIngestor{}, nil, nil),
		Artwork:       artwork,
		TemplateDir:   filepath.Join("..", "..", "web", "templates"),
		StaticDir:     filepath.Join("..", "..", "web", "static"),
		MaxUploadSize: 10 * 1024 * 1024,
	}

	server := httptest.NewServer(NewRouter(app))
	t.Cleanup(func() {
		server.Close()
		app.Players.Shutdown()
	})

	return &TestServer{
		Server:     server,
		App:        app,
		ArtworkDir: artworkDir,
		StagingDir: stagingDir,
	}
}

func (ts *TestServer) get(t *testing.T, path string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return do(t, req)
}

func (ts *TestServer) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, req)
}

func do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(body)
}

type upload struct {
	field, filename, contentType string
	content                      []byte
}

func createMultipartUpload(fields url.Values, files ...upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.content); err != nil {
			return nil, "", err
		}
	}

	for key, values := range fields {
		for _, v := range values {
			if err := writer.WriteField(key, v); err != nil {
				return nil, "", err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

var sessionField = regexp.MustCompile(`name="session" value="([^"]+)"`)

func checkoutSession(t *testing.T, body string) string {
	t.Helper()
	m := sessionField.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("No checkout session in page:\n%s", body)
	}
	return m[1]
}
