package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsMobileUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; android 14; Pixel 8)", true},
		{"ipod touch", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsMobileUserAgent(tc.ua); got != tc.want {
			t.Errorf("IsMobileUserAgent(%q) = %v, want %v", tc.ua, got, tc.want)
		}
	}
}

func TestFromOrigin(t *testing.T) {
	tests := []struct {
		origin string
		secure bool
	}{
		{"https://app.example.com", true},
		{"wss://app.example.com/socket", true},
		{"file:///tmp/index.html", true},
		{"http://localhost:5173", true},
		{"http://app.localhost:5173", true},
		{"http://127.0.0.1:8080", true},
		{"http://[::1]:8080", true},
		{"http://192.168.1.10:8080", false},
		{"http://app.example.com", false},
	}
	for _, tc := range tests {
		t.Run(tc.origin, func(t *testing.T) {
			caps, err := FromOrigin(tc.origin, "ua")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if caps.IsSecureContext() != tc.secure {
				t.Errorf("secure = %v, want %v", caps.IsSecureContext(), tc.secure)
			}
		})
	}

	if _, err := FromOrigin("localhost", "ua"); err == nil {
		t.Error("expected error for origin without scheme")
	}
}

func TestStatic(t *testing.T) {
	caps := NewStatic(false, "Android")
	if caps.IsSecureContext() {
		t.Error("expected insecure")
	}
	caps.SetSecure(true)
	if !caps.IsSecureContext() {
		t.Error("expected secure after SetSecure")
	}
	if !caps.IsMobile() || caps.UserAgent() != "Android" {
		t.Errorf("unexpected user agent handling %q", caps.UserAgent())
	}
}

func TestFileMicrophone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mic.raw")
	if err := os.WriteFile(path, []byte("pcm"), 0o600); err != nil {
		t.Fatal(err)
	}

	stream, err := FileMicrophone{Path: path}.Open(context.Background())
	if err != nil {
		t.Fatalf("expected access granted, got %v", err)
	}
	stream.Stop()
	stream.Stop()

	if _, err := (FileMicrophone{Path: filepath.Join(t.TempDir(), "missing")}).Open(context.Background()); err == nil {
		t.Error("expected error for missing device")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FileMicrophone{Path: path}).Open(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestFuncAdapters(t *testing.T) {
	stopped := false
	mic := MicrophoneFunc(func(context.Context) (Stream, error) {
		return StreamFunc(func() { stopped = true }), nil
	})
	s, err := mic.Open(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if !stopped {
		t.Error("expected StreamFunc to run")
	}
}
