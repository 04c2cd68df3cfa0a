package store

import "context"

// tokenKey is the fixed slot the bearer token lives under
const tokenKey = "auth.token"

// TokenSlot adapts the store to the client's TokenStore interface. Clearing
// an already empty slot succeeds, matching the idempotence the session store
// relies on during logout and 401 cleanup.
type TokenSlot struct {
	store *Store
}

// Tokens returns the durable token slot of this store
func (s *Store) Tokens() *TokenSlot {
	return &TokenSlot{store: s}
}

func (t *TokenSlot) Get(ctx context.Context) (string, error) {
	return t.store.Get(ctx, tokenKey)
}

func (t *TokenSlot) Set(ctx context.Context, token string) error {
	return t.store.Put(ctx, tokenKey, token)
}

func (t *TokenSlot) Clear(ctx context.Context) error {
	return t.store.Remove(ctx, tokenKey)
}
