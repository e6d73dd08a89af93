package security

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactor_Literals(t *testing.T) {
	t.Parallel()

	r := NewRedactor()
	r.AddLiteral("hunter2")
	r.AddLiteral("") // ignored

	got := r.Redact("password is hunter2, repeat hunter2")
	want := "password is ***REDACTED***, repeat ***REDACTED***"
	if got != want {
		t.Errorf("Redact = %q, want %q", got, want)
	}

	if got := r.Redact("nothing secret here"); got != "nothing secret here" {
		t.Errorf("Redact changed a clean string: %q", got)
	}
}

func TestRedactingHandler(t *testing.T) {
	t.Parallel()

	r := NewRedactor()
	r.AddLiteral("s3cret-token")

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), r,
	))

	logger.Info("login attempt", "token", "s3cret-token", "user", "alice")

	out := buf.String()
	if strings.Contains(out, "s3cret-token") {
		t.Errorf("secret leaked into log output: %q", out)
	}
	if !strings.Contains(out, RedactPlaceholder) {
		t.Errorf("placeholder missing from log output: %q", out)
	}
	if !strings.Contains(out, "alice") {
		t.Errorf("non-secret attr missing from log output: %q", out)
	}
}

func TestRedactingHandler_Message(t *testing.T) {
	t.Parallel()

	r := NewRedactor()
	r.AddLiteral("topsecret")

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(
		slog.NewTextHandler(&buf, nil), r,
	))

	logger.Info("received topsecret in payload")

	if strings.Contains(buf.String(), "topsecret") {
		t.Errorf("secret leaked via message: %q", buf.String())
	}
}
