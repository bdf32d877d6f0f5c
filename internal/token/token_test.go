package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/askarbek/moviehub/internal/domain"
)

var testSecret = []byte("token-test-secret-at-least-32-ch!")

func newTestService(ttl time.Duration) *Service {
	return NewService(testSecret, ttl)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)

	raw, err := svc.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
}

func TestVerify_FailsAtAndAfterExpiry(t *testing.T) {
	svc := newTestService(time.Hour)

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Any instant strictly before expiry verifies.
	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := svc.Verify(raw); err != nil {
		t.Errorf("verify before expiry: %v", err)
	}

	// From expiry onward it does not. No skew tolerance.
	for _, offset := range []time.Duration{time.Hour + time.Second, 2 * time.Hour} {
		svc.now = func() time.Time { return issued.Add(offset) }
		_, err := svc.Verify(raw)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("verify at +%v: err = %v, want ErrTokenInvalid", offset, err)
		}
	}
}

func TestVerify_WrongKey(t *testing.T) {
	other := NewService([]byte("a-completely-different-32-char-k!"), time.Hour)
	raw, err := other.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = newTestService(time.Hour).Verify(raw)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := newTestService(time.Hour)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Verify(%q): err = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestVerify_RejectsNonHMACAlgorithm(t *testing.T) {
	// alg=none with an empty signature must not be accepted.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = newTestService(time.Hour).Verify(unsigned)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
