package browserslist

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewResolver(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	fixed := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	r, err := NewResolver(
		WithMobileToDesktop(true),
		WithIgnoreUnknownVersions(true),
		WithNodeVersion("v20.9.0"),
		WithClock(fixedClock(fixed)),
		WithPath("/src/app"),
		WithConfigPath("/src/app/.browserslistrc"),
		WithEnv("development"),
		WithThrowOnMissing(true),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	opts := r.Opts()
	if !opts.MobileToDesktop {
		t.Error("MobileToDesktop = false, want true")
	}
	if !opts.IgnoreUnknownVersions {
		t.Error("IgnoreUnknownVersions = false, want true")
	}
	if opts.NodeVersion != "v20.9.0" {
		t.Errorf("NodeVersion = %q, want %q", opts.NodeVersion, "v20.9.0")
	}
	if opts.Now == nil || !opts.Now().Equal(fixed) {
		t.Errorf("Now() does not return the configured clock")
	}
	if opts.Path != "/src/app" {
		t.Errorf("Path = %q, want %q", opts.Path, "/src/app")
	}
	if opts.ConfigPath != "/src/app/.browserslistrc" {
		t.Errorf("ConfigPath = %q, want %q", opts.ConfigPath, "/src/app/.browserslistrc")
	}
	if opts.Env != "development" {
		t.Errorf("Env = %q, want %q", opts.Env, "development")
	}
	if !opts.ThrowOnMissing {
		t.Error("ThrowOnMissing = false, want true")
	}
	if opts.Logger != logger {
		t.Error("Logger was not set")
	}
}

func TestNewResolver_Defaults(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	opts := r.Opts()
	if opts.MobileToDesktop || opts.IgnoreUnknownVersions || opts.ThrowOnMissing {
		t.Errorf("NewResolver() opts = %+v, want zero flags", opts)
	}
	if opts.Now != nil || opts.Logger != nil {
		t.Errorf("NewResolver() opts = %+v, want nil clock and logger", opts)
	}
}

func TestNewResolver_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr string
	}{
		{"nil clock", WithClock(nil), "clock must not be nil"},
		{"bad node version", WithNodeVersion("twenty"), `node version "twenty"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.opt)
			if err == nil {
				t.Fatal("NewResolver() = nil error, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewResolver() error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolverUsesOptions(t *testing.T) {
	r, err := NewResolver(WithNodeVersion("v18.1.0"), WithMobileToDesktop(true))
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	got, err := r.Resolve([]string{"current node", "and_chr 100"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []Distrib{NewDistrib("and_chr", "100"), NewDistrib("node", "18.1.0")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}
