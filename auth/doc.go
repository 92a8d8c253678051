// Package auth resolves, validates and stores the Red Letters engine auth token.
//
// Resolution is a two-tier lookup: the OS keyring first, then the fallback file.
// A token found in the keyring that fails validation is reported as
// ErrInvalidFormat; the fallback file is not consulted in that case.
//
//	r, err := auth.NewResolver(keyringStore, fallbackFile)
//	if err != nil {
//		return err
//	}
//	tok, err := r.ResolveToken(ctx)
//
// Clients of the engine attach the token to their requests through TokenSource:
//
//	ts, err := auth.NewTokenSource(r)
//	client := oauth2.NewClient(ctx, ts)
//
// Writes and deletes only ever touch the keyring tier.
package auth
