package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIToken: "tok"})
}

func TestClassifyNestedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/org/sentiment-model" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`[[{"label":"happy","score":0.91},{"label":"sad","score":0.09}]]`))
	})

	scores, err := client.Classify(context.Background(), "org/sentiment-model", "سلام")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("score count = %d, want 2", len(scores))
	}
	if scores[0].Label != "happy" || scores[0].Score != 0.91 {
		t.Errorf("scores[0] = %+v", scores[0])
	}
}

func TestClassifyFlatPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"irony","score":0.73}]`))
	})

	scores, err := client.Classify(context.Background(), "org/irony-model", "sure, great")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Label != "irony" {
		t.Errorf("scores = %+v", scores)
	}
}

func TestTranslate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"translation_text":"hello world"}]`))
	})

	text, err := client.Translate(context.Background(), "org/mt-model", "سلام دنیا")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("translation = %q", text)
	}
}

func TestStatusErrorCarriesAPIMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model org/x is currently loading","estimated_time":20}`))
	})

	_, err := client.Classify(context.Background(), "org/x", "text")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if statusErr.Message != "Model org/x is currently loading" {
		t.Errorf("Message = %q", statusErr.Message)
	}
}

func TestInvokeRejectsEmptyInput(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused.test"})
	if _, err := client.Classify(context.Background(), "org/x", "   "); err == nil {
		t.Error("empty input should fail before any HTTP call")
	}
	if _, err := client.Classify(context.Background(), "", "text"); err == nil {
		t.Error("empty model should fail before any HTTP call")
	}
}

func TestClassifyRejectsUnexpectedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"surprise":true}`))
	})

	if _, err := client.Classify(context.Background(), "org/x", "text"); err == nil {
		t.Error("expected error for unexpected payload shape")
	}
}
