package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"go-tenbox/internal/scoring"
)

type memStorage struct {
	entries []scoring.Entry
	saveErr error
}

func (m *memStorage) LoadAll() ([]scoring.Entry, error) { return m.entries, nil }

func (m *memStorage) SaveAll(entries []scoring.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = entries
	return nil
}

func newTestServer(secret string, storage *memStorage) *Server {
	return New(scoring.NewRankingStore(storage, zerolog.Nop()), secret, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer("", &memStorage{}), http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}
}

func TestSubmitAndList(t *testing.T) {
	s := newTestServer("", &memStorage{})

	for _, body := range []string{`{"name":"a","score":30}`, `{"name":"b","score":50}`, `{"name":"  ","score":10}`} {
		if w := do(t, s, http.MethodPost, "/rankings", body, ""); w.Code != http.StatusCreated {
			t.Fatalf("Submit %s: expected 201, got %d (%s)", body, w.Code, w.Body.String())
		}
	}

	w := do(t, s, http.MethodGet, "/rankings", "", "")
	var got []rankedEntry
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}
	if got[0].Rank != 1 || got[0].Name != "b" || got[0].Score != 50 {
		t.Errorf("Unexpected first entry %+v", got[0])
	}
	if got[2].Name != scoring.DefaultName || got[2].Rank != 3 {
		t.Errorf("Unexpected last entry %+v", got[2])
	}
}

func TestSubmitRank(t *testing.T) {
	s := newTestServer("", &memStorage{entries: []scoring.Entry{{Name: "x", Score: 100}}})

	w := do(t, s, http.MethodPost, "/rankings", `{"name":"y","score":40}`, "")
	var resp submitResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rank != 2 || resp.Warning != "" {
		t.Errorf("Expected rank 2 without warning, got %+v", resp)
	}
}

func TestSubmitValidation(t *testing.T) {
	s := newTestServer("", &memStorage{})
	tests := []struct {
		body string
		code int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"name":"a"}`, http.StatusBadRequest},
		{`{"name":"a","score":-1}`, http.StatusBadRequest},
		{`{"name":"a","score":0}`, http.StatusCreated},
	}
	for _, tt := range tests {
		if w := do(t, s, http.MethodPost, "/rankings", tt.body, ""); w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.body, tt.code, w.Code)
		}
	}
}

func TestSubmitWriteFailureIsWarning(t *testing.T) {
	s := newTestServer("", &memStorage{saveErr: errors.New("read-only")})

	w := do(t, s, http.MethodPost, "/rankings", `{"name":"a","score":10}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}
	var resp submitResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Warning == "" || resp.Rank != 1 {
		t.Errorf("Expected rank 1 with a warning, got %+v", resp)
	}
}

func TestSubmitRequiresToken(t *testing.T) {
	const secret = "test-secret"
	s := newTestServer(secret, &memStorage{})
	body := `{"name":"a","score":10}`

	if w := do(t, s, http.MethodPost, "/rankings", body, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Missing token: expected 401, got %d", w.Code)
	}

	bad, _ := SignToken("other-secret", "a", time.Hour)
	if w := do(t, s, http.MethodPost, "/rankings", body, bad); w.Code != http.StatusUnauthorized {
		t.Errorf("Wrong secret: expected 401, got %d", w.Code)
	}

	expired, _ := SignToken(secret, "a", -time.Minute)
	if w := do(t, s, http.MethodPost, "/rankings", body, expired); w.Code != http.StatusUnauthorized {
		t.Errorf("Expired token: expected 401, got %d", w.Code)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "a"})
	noneStr, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if w := do(t, s, http.MethodPost, "/rankings", body, noneStr); w.Code != http.StatusUnauthorized {
		t.Errorf("alg=none: expected 401, got %d", w.Code)
	}

	good, err := SignToken(secret, "a", time.Hour)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if w := do(t, s, http.MethodPost, "/rankings", body, good); w.Code != http.StatusCreated {
		t.Errorf("Valid token: expected 201, got %d", w.Code)
	}

	// reads stay open
	if w := do(t, s, http.MethodGet, "/rankings", "", ""); w.Code != http.StatusOK {
		t.Errorf("GET should not need a token, got %d", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	w := do(t, newTestServer("", &memStorage{}), http.MethodGet, "/nope", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestListRereadsStorage(t *testing.T) {
	storage := &memStorage{}
	s := newTestServer("", storage)

	// another process writes the shared table
	storage.entries = []scoring.Entry{{Name: "tui", Score: 40, Time: "t"}}

	w := do(t, s, http.MethodGet, "/rankings", "", "")
	var got []rankedEntry
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "tui" {
		t.Errorf("Expected the externally written entry, got %+v", got)
	}
}
