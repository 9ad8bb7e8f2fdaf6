package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := VerifyPassword(hash, "correct-horse"); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}
	if err := VerifyPassword(hash, "wrong-password"); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected bcrypt to produce different hashes for the same input")
	}
}

func TestIsPasswordValid(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"12345", false},
		{"123456", true},
		{"a-much-longer-password", true},
	}

	for _, tc := range cases {
		if got := IsPasswordValid(tc.password); got != tc.want {
			t.Errorf("IsPasswordValid(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
