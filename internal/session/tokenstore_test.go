package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestFileTokenStore_Paths(t *testing.T) {
	dir := withTmpConfig(t)
	f := NewFileTokenStore()
	if !strings.HasPrefix(f.path(), filepath.Join(dir, "bookhub")) || !strings.HasSuffix(f.path(), "token.json") {
		t.Fatalf("path unexpected: %s", f.path())
	}
}

func TestFileTokenStore_SaveLoadClear(t *testing.T) {
	withTmpConfig(t)
	f := NewFileTokenStore()

	if tok, err := f.Load(); err != nil || tok != "" {
		t.Fatalf("Load on empty store: tok=%q err=%v", tok, err)
	}
	if err := f.Save("opaque-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err := f.Load()
	if err != nil || tok != "opaque-token" {
		t.Fatalf("Load: tok=%q err=%v", tok, err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := f.Load(); tok != "" {
		t.Fatalf("Load after Clear: %q", tok)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear twice: %v", err)
	}
}

func TestFileTokenStore_ExpiredJWTReadsAbsent(t *testing.T) {
	withTmpConfig(t)
	f := NewFileTokenStore()

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := f.Save(tok); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := f.Load(); got != "" {
		t.Fatalf("expired token must read as absent, got %q", got)
	}
}

func TestFileTokenStore_CorruptFileReadsAbsent(t *testing.T) {
	withTmpConfig(t)
	f := NewFileTokenStore()
	if err := os.MkdirAll(filepath.Dir(f.path()), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.path(), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if tok, err := f.Load(); err != nil || tok != "" {
		t.Fatalf("corrupt file: tok=%q err=%v", tok, err)
	}
}
