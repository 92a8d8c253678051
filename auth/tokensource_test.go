package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"github.com/redletters/rlauth/tokenstore"
)

func TestTokenSourceAttachesBearer(t *testing.T) {
	var gotHeader string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	kr := &fakeKeyring{value: validToken, present: true}
	ts, err := NewTokenSource(newTestResolver(t, kr, forbiddenFallback{t}))
	if err != nil {
		t.Fatalf("NewTokenSource: %v", err)
	}

	client := &http.Client{Transport: &oauth2.Transport{Source: ts}}
	resp, err := client.Get(upstream.URL + "/v1/engine/status")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	_ = resp.Body.Close()

	if want := "Bearer " + validToken; gotHeader != want {
		t.Errorf("Authorization = %q, want %q", gotHeader, want)
	}
}

func TestTokenSourceResolvesEveryCall(t *testing.T) {
	kr := &fakeKeyring{value: validToken, present: true}
	ts, err := NewTokenSource(newTestResolver(t, kr, &fakeFallback{err: tokenstore.ErrNotFound}))
	if err != nil {
		t.Fatal(err)
	}

	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != validToken || tok.Type() != "Bearer" {
		t.Errorf("Token = %+v", tok)
	}

	kr.value, kr.present = "", false
	if _, err := ts.Token(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Token after delete = %v, want ErrNotFound", err)
	}
}

func TestNewTokenSourceNilResolver(t *testing.T) {
	if _, err := NewTokenSource(nil); err == nil {
		t.Error("nil resolver should fail")
	}
}
