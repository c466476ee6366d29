package security

import (
	"strings"
	"testing"
)

// Low-cost parameters keep the test fast; correctness does not depend on them.
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Fatalf("correct password must verify")
	}
	if h.Verify("wrong password", encoded) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher()
	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestVerifyRejectsMalformedEncodings(t *testing.T) {
	h := testHasher()
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$notbase64!$alsonot!",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
	} {
		if h.Verify("anything", encoded) {
			t.Fatalf("malformed encoding %q must not verify", encoded)
		}
	}
}
