package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/redletters/rlauth/auth"
	"github.com/redletters/rlauth/tokenstore"
)

func ExampleTokenSource() {
	keyring.MockInit()

	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Println(r.Header.Get("Authorization") != "")
	}))
	defer engine.Close()

	ctx := context.Background()
	kr, err := tokenstore.NewKeyringStore("com.redletters.engine.example", "auth_token")
	if err != nil {
		panic(err)
	}
	fallback, err := tokenstore.NewFileStore("/nonexistent/.auth_token")
	if err != nil {
		panic(err)
	}
	r, err := auth.NewResolver(kr, fallback)
	if err != nil {
		panic(err)
	}
	if err := r.StoreToken(ctx, "rl_abcdefghij1234567890xyz"); err != nil {
		panic(err)
	}

	ts, err := auth.NewTokenSource(r)
	if err != nil {
		panic(err)
	}
	resp, err := oauth2.NewClient(ctx, ts).Get(engine.URL)
	if err != nil {
		panic(err)
	}
	_ = resp.Body.Close()
	// Output: true
}
