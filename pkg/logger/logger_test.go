package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_IsSingleton(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "debug", Output: &first, Service: "cms-api"})
	Init(Options{Level: "error", Output: &second})

	log := Get()
	log.Info().Msg("hello")
	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger")
	}

	var event map[string]any
	if err := json.Unmarshal(first.Bytes(), &event); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", first.String(), err)
	}
	if event["service"] != "cms-api" || event["message"] != "hello" {
		t.Fatalf("unexpected event: %v", event)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
