package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateAccessToken("user-1", "alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.LoginID != "alice" {
		t.Errorf("claims = %s/%s", claims.UserID, claims.LoginID)
	}
	if claims.TokenType != "access" {
		t.Errorf("tokenType = %q, want access", claims.TokenType)
	}
}

func TestRefreshTokenType(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", "alice", "s", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	claims, err := ValidateToken(token, "s")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("tokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken("user-1", "alice", "right", time.Hour)
	if _, err := ValidateToken(token, "wrong"); err == nil {
		t.Fatal("token validated with wrong secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, _ := GenerateAccessToken("user-1", "alice", "s", -time.Minute)
	if _, err := ValidateToken(token, "s"); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22hunter22" {
		t.Fatal("password stored in the clear")
	}
	if err := CheckPassword(hash, "hunter22hunter22"); err != nil {
		t.Errorf("CheckPassword(correct): %v", err)
	}
	if err := CheckPassword(hash, "nope"); err == nil {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<script>alert(1)</script>hello", "hello"},
		{"  <b>bold</b> text  ", "bold text"},
		{"a &amp; b", "a & b"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldForSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"NAÏVE", "naive"},
		{"Gorüçme", "gorucme"},
		{"already plain", "already plain"},
	}
	for _, tt := range tests {
		if got := FoldForSearch(tt.in); got != tt.want {
			t.Errorf("FoldForSearch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRandomJoinCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := RandomJoinCode(8)
		if len(code) != 8 {
			t.Fatalf("len = %d", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(joinCodeChars, r) {
				t.Fatalf("code %q contains %q outside charset", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes never vary")
	}
}

func TestParseYmd(t *testing.T) {
	got, err := ParseYmd("2025-03-09")
	if err != nil {
		t.Fatalf("ParseYmd: %v", err)
	}
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"2025-3-9", "03/09/2025", "not a date", ""} {
		if _, err := ParseYmd(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseYmd(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		// Wednesday -> preceding Monday
		{time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// Monday maps to itself
		{time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the week started six days earlier
		{time.Date(2025, 3, 16, 1, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToYmd(t *testing.T) {
	if got := ToYmd(time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)); got != "2025-12-01" {
		t.Errorf("ToYmd = %q", got)
	}
}
