package password_test

import (
	"strings"
	"testing"

	"github.com/askarbek/moviehub/internal/password"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := password.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Password1!" {
		t.Fatal("hash equals plaintext")
	}

	ok, err := password.Verify("Password1!", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}
}

func TestVerify_SingleCharacterDifferenceFails(t *testing.T) {
	hash, err := password.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	for _, wrong := range []string{"Password1?", "password1!", "Password1! ", ""} {
		ok, err := password.Verify(wrong, hash)
		if err != nil {
			t.Fatalf("verify(%q): %v", wrong, err)
		}
		if ok {
			t.Errorf("verify(%q) = true, want false", wrong)
		}
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	h1, err := password.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := password.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salt missing")
	}
}

func TestVerify_CorruptedHashReturnsError(t *testing.T) {
	ok, err := password.Verify("Password1!", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for malformed stored hash")
	}
	if ok {
		t.Error("malformed hash verified as true")
	}
	if !strings.Contains(err.Error(), "verify password") {
		t.Errorf("error %q lacks context", err)
	}
}
