package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"
)

func fakePath(present ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		if slices.Contains(present, name) {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestCommand(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	tests := []struct {
		name    string
		goos    string
		present []string
		want    string
		wantErr bool
	}{
		{"mac", "darwin", []string{"pbcopy"}, "pbcopy", false},
		{"wayland first", "linux", []string{"xclip", "wl-copy"}, "wl-copy", false},
		{"xclip before xsel", "linux", []string{"xsel", "xclip"}, "xclip", false},
		{"xsel only", "freebsd", []string{"xsel"}, "xsel", false},
		{"nothing", "linux", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath = fakePath(tt.present...)
			got, err := command(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("Expected ErrUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got[0] != tt.want {
				t.Errorf("Expected %s, got %v", tt.want, got)
			}
		})
	}
}

func TestWriteFallsBackToOSC52(t *testing.T) {
	origPath, origTerm := lookPath, terminal
	t.Cleanup(func() { lookPath, terminal = origPath, origTerm })

	var buf bytes.Buffer
	lookPath = fakePath()
	terminal = &buf

	if err := Write("Proton = 1 Down Quark, 2 Up Quark"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Errorf("Expected an OSC 52 sequence, got %q", out)
	}
	want := base64.StdEncoding.EncodeToString([]byte("Proton = 1 Down Quark, 2 Up Quark"))
	if !strings.Contains(out, want) {
		t.Errorf("Expected payload %s in %q", want, out)
	}
}
