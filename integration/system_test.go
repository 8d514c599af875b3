//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type productResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestSystem_E2E_ProductLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	name := fmt.Sprintf("product_%d_%d", time.Now().Unix(), rand.Intn(100000))

	var created productResp
	doJSON(t, http.MethodPost, baseURL+"/api/v1/products", map[string]any{"name": name}, &created, 201)
	if created.ID <= 0 || created.Name != name {
		t.Fatalf("unexpected create response: %+v", created)
	}

	var next productResp
	doJSON(t, http.MethodPost, baseURL+"/api/v1/products", map[string]any{"name": name + "_2"}, &next, 201)
	if next.ID <= created.ID {
		t.Fatalf("ids not increasing: %d then %d", created.ID, next.ID)
	}

	url := fmt.Sprintf("%s/api/v1/products/%d", baseURL, created.ID)

	var got productResp
	doJSON(t, http.MethodGet, url, nil, &got, 200)
	if got != created {
		t.Fatalf("find mismatch: %+v vs %+v", got, created)
	}

	var updated productResp
	doJSON(t, http.MethodPut, url, map[string]any{"name": name + "_renamed"}, &updated, 200)
	if updated.ID != created.ID || updated.Name != name+"_renamed" {
		t.Fatalf("unexpected update response: %+v", updated)
	}

	doJSON(t, http.MethodGet, baseURL+"/api/v1/products/999999999", nil, nil, 404)

	if os.Getenv("E2E_RESTART") == "1" {
		restartContainer(t, ctx, getenv("E2E_SERVICE", "product"))
		waitReady(t, ctx, baseURL+"/readyz")
		doJSON(t, http.MethodGet, url, nil, &got, 200)
		if got != updated {
			t.Fatalf("product lost across restart: %+v", got)
		}
	}

	doJSON(t, http.MethodDelete, url, nil, nil, 204)
	doJSON(t, http.MethodGet, url, nil, nil, 404)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
