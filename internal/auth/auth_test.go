package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "standout-auth-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a shopper account", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newTestStore(t))
		user, err := authn.Register(ctx, "shopper@example.com", "password123")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Email != "shopper@example.com" {
			t.Errorf("email = %q", user.Email)
		}
		if user.IsAdmin {
			t.Error("registered users must not be admins")
		}
		if user.PasswordHash == "password123" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newTestStore(t))
		if _, err := authn.Register(ctx, "a@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newTestStore(t))
		if _, err := authn.Register(ctx, "a@example.com", "password123"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := authn.Register(ctx, "a@example.com", "password456"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	authn := NewPasswordAuthenticator(newTestStore(t))
	if _, err := authn.Register(ctx, "a@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := authn.Authenticate(ctx, "a@example.com", "password123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Email != "a@example.com" {
			t.Errorf("email = %q", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := authn.Authenticate(ctx, "a@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := authn.Authenticate(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWT(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@example.com", IsAdmin: true}

	t.Run("generate and validate round-trip", func(t *testing.T) {
		manager := NewJWTManager("test-secret", time.Hour)
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "u1" || claims.Email != "a@example.com" || !claims.IsAdmin {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-one", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := NewJWTManager("secret-two", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		manager := NewJWTManager("test-secret", -time.Minute)
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		manager := NewJWTManager("test-secret", time.Hour)
		if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
