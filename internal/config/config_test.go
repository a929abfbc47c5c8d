package config

import (
	"reflect"
	"testing"
)

func TestNormalizeIndexURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://habr.com/ru/companies/ru_mts/articles", "https://habr.com/ru/companies/ru_mts/articles/"},
		{"https://habr.com/ru/companies/ru_mts/articles/", "https://habr.com/ru/companies/ru_mts/articles/"},
		{"  https://habr.com/ru/articles  ", "https://habr.com/ru/articles/"},
	}
	for _, tc := range cases {
		if got := normalizeIndexURL(tc.in); got != tc.want {
			t.Errorf("normalizeIndexURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseStatusesCSV(t *testing.T) {
	got, err := parseStatusesCSV("429, 500,502 ,503,504")
	if err != nil {
		t.Fatalf("parseStatusesCSV() error = %v", err)
	}
	want := []int{429, 500, 502, 503, 504}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseStatusesCSV() = %v, want %v", got, want)
	}
}

func TestParseStatusesCSVEmpty(t *testing.T) {
	got, err := parseStatusesCSV("   ")
	if err != nil {
		t.Fatalf("parseStatusesCSV() error = %v", err)
	}
	if got != nil {
		t.Fatalf("parseStatusesCSV() = %v, want nil", got)
	}
}

func TestParseStatusesCSVRejectsGarbage(t *testing.T) {
	if _, err := parseStatusesCSV("429,many"); err == nil {
		t.Fatal("expected error for non-numeric status")
	}
	if _, err := parseStatusesCSV("42"); err == nil {
		t.Fatal("expected error for out-of-range status")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BlogURL != "https://habr.com/ru/companies/ru_mts/articles/" {
		t.Errorf("BlogURL = %q", cfg.BlogURL)
	}
	if cfg.BlogOrigin != "https://habr.com" {
		t.Errorf("BlogOrigin = %q", cfg.BlogOrigin)
	}
	if cfg.RetryAttempts != 10 {
		t.Errorf("RetryAttempts = %d, want 10", cfg.RetryAttempts)
	}
	if len(cfg.RetryStatuses) != 5 {
		t.Errorf("RetryStatuses = %v, want five codes", cfg.RetryStatuses)
	}
	if cfg.FetchConcurrency != 16 {
		t.Errorf("FetchConcurrency = %d, want 16", cfg.FetchConcurrency)
	}
	if cfg.CrawlInterval != 0 {
		t.Errorf("CrawlInterval = %s, want 0", cfg.CrawlInterval)
	}
}
