package token

import "testing"

func TestGenerateRandomToken_UniqueAndURLSafe(t *testing.T) {
	a, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a == b {
		t.Fatalf("expected distinct tokens, got %q twice", a)
	}
	for _, r := range a {
		if r == '+' || r == '/' || r == '=' {
			t.Fatalf("token %q contains non-URL-safe character %q", a, r)
		}
	}
}

func TestHashSHA256_Deterministic(t *testing.T) {
	h1 := HashSHA256("refresh-token-value")
	h2 := HashSHA256("refresh-token-value")
	if h1 != h2 {
		t.Fatalf("expected deterministic hash, got %q and %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(h1))
	}
	if h1 == HashSHA256("other-token") {
		t.Fatalf("different inputs must not collide")
	}
}
