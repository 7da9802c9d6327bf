package config

import (
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "CHAPTERIZE_API_KEY", "WORKER_COUNT", "MAX_QUEUE_SIZE", "MAX_UPLOAD_BYTES",
	"JOB_TTL", "SESSION_TTL", "MAX_HISTORY", "TITLE_MAX_LEN", "STATS_WINDOW",
	"FALLBACK_ENCODING", "PDF_FALLBACK_PDFTOTEXT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxHistory != 1000 {
		t.Errorf("expected max history 1000, got %d", cfg.MaxHistory)
	}
	if cfg.TitleMaxLen != 50 {
		t.Errorf("expected title max len 50, got %d", cfg.TitleMaxLen)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected session ttl 24h, got %s", cfg.SessionTTL)
	}
	if cfg.FallbackEncoding != "gb18030" {
		t.Errorf("expected fallback encoding gb18030, got %q", cfg.FallbackEncoding)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("MAX_HISTORY", "10")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("FALLBACK_ENCODING", "big5")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port %q, got %q", "9000", cfg.Port)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxHistory != 10 {
		t.Errorf("expected max history 10, got %d", cfg.MaxHistory)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected session ttl 30m, got %s", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("expected max upload 1024, got %d", cfg.MaxUploadBytes)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
	if cfg.FallbackEncoding != "big5" {
		t.Errorf("expected big5, got %q", cfg.FallbackEncoding)
	}
}

func TestLoad_NonPositiveFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_COUNT", "0")
	t.Setenv("MAX_HISTORY", "-5")
	t.Setenv("JOB_TTL", "-1s")
	t.Setenv("TITLE_MAX_LEN", "not-a-number")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxHistory != 1000 {
		t.Errorf("expected max history 1000, got %d", cfg.MaxHistory)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected job ttl 1h, got %s", cfg.JobTTL)
	}
	if cfg.TitleMaxLen != 50 {
		t.Errorf("expected title max len 50, got %d", cfg.TitleMaxLen)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without API key")
	}

	cfg.APIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.FallbackEncoding = "klingon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown fallback encoding")
	}
}
