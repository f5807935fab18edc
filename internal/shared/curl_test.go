package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("Headers And Cookie Header", func(t *testing.T) {
		cmd := `curl 'http://localhost:5000/pingauth' \
  -H 'Accept: application/json' \
  -H 'Cookie: .AspNetCore.Identity.Application=CfDJ8abc123; other=1'`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if session.Headers["Accept"] != "application/json" {
			t.Errorf("expected Accept header, got %v", session.Headers)
		}
		if got := session.SessionCookie(".AspNetCore.Identity.Application"); got != "CfDJ8abc123" {
			t.Errorf("expected session cookie value CfDJ8abc123, got %q", got)
		}
	})

	t.Run("Cookie Flag Wins", func(t *testing.T) {
		cmd := `curl 'http://localhost:5000/api/Movies' -H 'Cookie: sid=old' -b 'sid=new'`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := session.SessionCookie("sid"); got != "new" {
			t.Errorf("expected -b cookie to win, got %q", got)
		}
	})

	t.Run("Missing Cookie", func(t *testing.T) {
		session, err := ParseCurlCommand([]byte(`curl 'http://localhost:5000' -H 'Accept: text/html'`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := session.SessionCookie("sid"); got != "" {
			t.Errorf("expected empty cookie, got %q", got)
		}
	})

	t.Run("Nothing To Parse", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte(`curl 'http://localhost:5000'`)); err == nil {
			t.Error("expected error for command without headers or cookie")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.sh")
		content := `curl 'http://localhost:5000/pingauth' -b 'sid=abc'`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		session, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.SessionCookie("sid") != "abc" {
			t.Errorf("expected sid=abc, got %q", session.SessionCookie("sid"))
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/session.sh"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
