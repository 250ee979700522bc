package jwt

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

const (
	testIssuer        = "test-issuer"
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_ISSUER", testIssuer)
	_ = os.Setenv("JWT_ACCESS_SECRET", testAccessSecret)
	_ = os.Setenv("JWT_REFRESH_SECRET", testRefreshSecret)

	code := m.Run()
	os.Exit(code)
}

func TestNewTokenService(t *testing.T) {
	srv := NewTokenService()
	if srv == nil {
		t.Fatal("NewTokenService() returned nil")
	}
	if srv.issuer != testIssuer {
		t.Fatalf("expected issuer %q, got %q", testIssuer, srv.issuer)
	}
}

func TestGenerateTokens(t *testing.T) {
	srv := NewTokenService()
	access, refresh, err := srv.GenerateTokens(context.Background(), 42, true)
	if err != nil {
		t.Fatalf("GenerateTokens returned error: %v", err)
	}
	if access == "" {
		t.Fatal("expected non-empty access token")
	}
	if refresh == "" {
		t.Fatal("expected non-empty refresh token")
	}
	if access == refresh {
		t.Fatal("access and refresh tokens must differ")
	}
}

func TestParseAccessToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		srv := NewTokenService()
		access, _, err := srv.GenerateTokens(context.Background(), 42, true)
		if err != nil {
			t.Fatalf("GenerateTokens returned error: %v", err)
		}

		claims, err := srv.ParseAccessToken(context.Background(), access)
		if err != nil {
			t.Fatalf("ParseAccessToken returned error: %v", err)
		}

		accountID, err := claims.AccountID()
		if err != nil {
			t.Fatalf("AccountID returned error: %v", err)
		}
		if accountID != 42 {
			t.Fatalf("expected account id 42, got %d", accountID)
		}
		if !claims.IsTrainer {
			t.Fatal("expected is_trainer=true")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		srv := NewTokenService()
		_, err := srv.ParseAccessToken(context.Background(), "")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Fatalf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		srv := NewTokenService()
		_, err := srv.ParseAccessToken(context.Background(), "not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		srv := NewTokenService()
		_, refresh, err := srv.GenerateTokens(context.Background(), 42, false)
		if err != nil {
			t.Fatalf("GenerateTokens returned error: %v", err)
		}

		if _, err := srv.ParseAccessToken(context.Background(), refresh); err == nil {
			t.Fatal("expected error parsing refresh token with access secret")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		srv := NewTokenService()
		srv.accessTokenExpiry = -time.Minute

		access, _, err := srv.GenerateTokens(context.Background(), 42, false)
		if err != nil {
			t.Fatalf("GenerateTokens returned error: %v", err)
		}

		_, err = srv.ParseAccessToken(context.Background(), access)
		if !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		srv := NewTokenService()
		access, _, err := srv.GenerateTokens(context.Background(), 42, false)
		if err != nil {
			t.Fatalf("GenerateTokens returned error: %v", err)
		}

		other := NewTokenService()
		other.accessSecret = []byte("some-other-secret")

		if _, err := other.ParseAccessToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestParseRefreshToken(t *testing.T) {
	srv := NewTokenService()
	_, refresh, err := srv.GenerateTokens(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("GenerateTokens returned error: %v", err)
	}

	claims, err := srv.ParseRefreshToken(context.Background(), refresh)
	if err != nil {
		t.Fatalf("ParseRefreshToken returned error: %v", err)
	}
	if claims.Subject != "7" {
		t.Fatalf("expected subject 7, got %q", claims.Subject)
	}
}
