package logger

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "anthropic api key",
			input: "using key sk-ant-abc123-xyz",
			want:  "using key sk-ant-***MASKED***",
		},
		{
			name:  "token assignment",
			input: "token: ghp_0123456789abcdef",
			want:  "token: ***MASKED***",
		},
		{
			name:  "token with equals",
			input: "TOKEN=secretvalue123",
			want:  "TOKEN=***MASKED***",
		},
		{
			name:  "api key",
			input: "api_key: abcd1234",
			want:  "api_key: ***MASKED***",
		},
		{
			name:  "api-key variant",
			input: "API-KEY = abcd1234",
			want:  "API-KEY = ***MASKED***",
		},
		{
			name:  "password",
			input: "password: hunter2!",
			want:  "password: ***MASKED***",
		},
		{
			name:  "clean message untouched",
			input: "posted 3 inline comments",
			want:  "posted 3 inline comments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskString(tt.input)
			if got != tt.want {
				t.Errorf("MaskString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskCore_Write(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(newMaskCore(observed))

	l.Info("auth with token: abc123",
		zap.String("key", "sk-ant-secret-1"),
		zap.Int("pr", 42),
		zap.Error(errors.New("request failed: api_key=deadbeef")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]
	if strings.Contains(entry.Message, "abc123") {
		t.Errorf("message not masked: %q", entry.Message)
	}

	fields := entry.ContextMap()
	if key, _ := fields["key"].(string); strings.Contains(key, "secret") {
		t.Errorf("string field not masked: %q", key)
	}
	if pr, ok := fields["pr"].(int64); !ok || pr != 42 {
		t.Errorf("non-string field altered: %v", fields["pr"])
	}
	if errField, _ := fields["error"].(string); strings.Contains(errField, "deadbeef") {
		t.Errorf("error field not masked: %q", errField)
	}
}

func TestMaskCore_With(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(newMaskCore(observed)).With(zap.String("token", "token=topsecret"))

	l.Info("run started")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if v, _ := entries[0].ContextMap()["token"].(string); strings.Contains(v, "topsecret") {
		t.Errorf("With() field not masked: %q", v)
	}
}
