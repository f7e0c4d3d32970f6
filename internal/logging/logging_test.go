package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.Info("hello", "k", "v")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(NewWriter(&buf), "controller")
	l.Info("started")
	if !strings.Contains(buf.String(), "component=controller") {
		t.Fatalf("component attribute missing: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}
