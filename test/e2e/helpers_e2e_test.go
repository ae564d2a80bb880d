//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const timeout = 30 * time.Second

// baseURL is the running server under test.
var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

const sampleCV = `Alex Morgan
alex.morgan@example.com | +44 20 7946 0018 | linkedin.com/in/alexmorgan
Summary
Backend engineer focused on Node.js services and reliable data pipelines.
Experience
Senior Backend Engineer, Initech, Feb 2021 - Present
- Designed a Node.js event pipeline processing 3M messages per day.
- Reduced infrastructure cost by 28% by consolidating PostgreSQL clusters.
- Led a team of 4 engineers delivering the billing API rewrite.
Backend Engineer, Hooli, Jun 2017 - Jan 2021
- Built TypeScript REST APIs used by 120 internal services.
- Cut deployment time from 40 to 8 minutes with Docker and CI pipelines.
Education
BSc Computer Science, University of Leeds, 2017
Skills
Node.js, TypeScript, PostgreSQL, Redis, Docker, Kubernetes, AWS`

// getenv returns the value of the environment variable k or def if empty.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// waitForAppReady polls /healthz until the server answers or the deadline passes.
func waitForAppReady(t *testing.T, client *http.Client, maxWait time.Duration) {
	t.Helper()
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("app not ready at %s after %s", baseURL, maxWait)
}

// analyzeJSON posts pasted text and decodes the response body.
func analyzeJSON(t *testing.T, client *http.Client, text, role string) (int, map[string]any) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"text": text, "role": role})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/analyze", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return do(t, client, req)
}

// analyzeFile uploads a file as the cv form field.
func analyzeFile(t *testing.T, client *http.Client, name string, content []byte, role string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if role != "" {
		require.NoError(t, mw.WriteField("role", role))
	}
	fw, err := mw.CreateFormFile("cv", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/analyze", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(t, client, req)
}

func do(t *testing.T, client *http.Client, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}
