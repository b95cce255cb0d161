package paths

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"python/base/x.py", "python/base/x.py"},
		{`python\base\x.py`, "python/base/x.py"},
		{"./python/x.py", "python/x.py"},
		{"python//base/../x.py", "python/x.py"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"python/base/x.py", []string{"python", "base", "x.py"}},
		{"/abs/x.py", []string{"abs", "x.py"}},
		{"x.py", []string{"x.py"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := Segments(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBlockName(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "python", "base", "upload_file.py")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BlockName(target, root)
	if err != nil {
		t.Fatalf("BlockName() error = %v", err)
	}
	if got != "python/base/upload_file.py" {
		t.Errorf("BlockName() = %q, want %q", got, "python/base/upload_file.py")
	}

	got, err = BlockName(`ps1\recon\scan.ps1`, "")
	if err != nil {
		t.Fatalf("BlockName() error = %v", err)
	}
	if got != "ps1/recon/scan.ps1" {
		t.Errorf("BlockName() without root = %q", got)
	}
}

func TestIsWithinRoot(t *testing.T) {
	root := t.TempDir()

	if !IsWithinRoot(filepath.Join(root, "python", "x.py"), root) {
		t.Error("file below root should be within root")
	}
	if IsWithinRoot(filepath.Join(filepath.Dir(root), "elsewhere.py"), root) {
		t.Error("sibling of root should not be within root")
	}
}
