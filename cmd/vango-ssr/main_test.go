package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vango-dev/ssr/internal/errors"
)

// execute runs the root command in an isolated config directory.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "defaults",
			args: []string{"render", "x-greeting"},
			want: `<x-greeting><template shadowrootmode="open"><p class="greeting">Hello, world!</p></template></x-greeting>` + "\n",
		},
		{
			name: "inline props",
			args: []string{"render", "x-greeting", "--props", `{"label": "hi", "count": 3}`},
			want: `<x-greeting><template shadowrootmode="open"><p class="greeting">Hello, hi!<span class="count"> x3</span></p></template></x-greeting>` + "\n",
		},
		{
			name:  "stdin props",
			stdin: `{"label": "piped"}`,
			args:  []string{"render", "x-greeting", "--props", "-"},
			want:  `<x-greeting><template shadowrootmode="open"><p class="greeting">Hello, piped!</p></template></x-greeting>` + "\n",
		},
		{
			name: "empty",
			args: []string{"render", "x-empty"},
			want: `<x-empty><template shadowrootmode="open"></template></x-empty>` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRenderCommandPropsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.yaml")
	if err := os.WriteFile(path, []byte("label: from yaml\ncount: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := execute(t, "", "render", "x-greeting", "--props", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(got, "Hello, from yaml!") || !strings.Contains(got, " x2") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRenderCommandJSON(t *testing.T) {
	got, err := execute(t, "", "render", "x-empty", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var result renderResult
	if err := json.Unmarshal([]byte(got), &result); err != nil {
		t.Fatalf("decode %q: %v", got, err)
	}
	if result.Tag != "x-empty" {
		t.Errorf("Tag = %q", result.Tag)
	}
	if result.HTML != `<x-empty><template shadowrootmode="open"></template></x-empty>` {
		t.Errorf("HTML = %q", result.HTML)
	}
	if result.Bytes != len(result.HTML) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, len(result.HTML))
	}
}

func TestRenderCommandPublishFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "greeting.html")

	out, err := execute(t, "", "render", "x-greeting", "--publish", "file://"+path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q does not mention %s", out, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read published file: %v", err)
	}
	if !strings.HasPrefix(string(data), "<x-greeting>") {
		t.Errorf("published %q", data)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown tag", []string{"render", "x-missing"}, "E040"},
		{"bad props", []string{"render", "x-greeting", "--props", `{"label": }`}, "E043"},
		{"bad destination", []string{"render", "x-empty", "--publish", "ftp://host/file"}, "E042"},
		{"bad log level", []string{"--log-level", "loud", "render", "x-empty"}, "E031"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.CodeOf(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestComponentsCommand(t *testing.T) {
	out, err := execute(t, "", "components")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, tag := range []string{"x-card", "x-empty", "x-greeting", "x-icon", "x-list"} {
		if !strings.Contains(out, tag) {
			t.Errorf("output missing %s:\n%s", tag, out)
		}
	}
	if strings.Index(out, "x-card") > strings.Index(out, "x-greeting") {
		t.Error("components not sorted by tag")
	}

	out, err = execute(t, "", "components", "--json")
	if err != nil {
		t.Fatalf("execute --json: %v", err)
	}
	var entries []struct {
		Tag         string `json:"tag"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 8 {
		t.Errorf("got %d entries, want 8", len(entries))
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != version+"\n" {
		t.Errorf("got %q, want %q", out, version+"\n")
	}
}
