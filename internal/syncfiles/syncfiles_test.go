package syncfiles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/cutrelease/internal/core"
)

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"package.json", FormatJSON},
		{"Chart.yaml", FormatYAML},
		{"deploy/values.YML", FormatYAML},
		{"pyproject.toml", FormatTOML},
		{"VERSION", FormatRaw},
		{"src/version.py", FormatRaw},
	}
	for _, tt := range tests {
		if got := FormatForFile(tt.path); got != tt.want {
			t.Errorf("FormatForFile(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFile_Resolved(t *testing.T) {
	got := File{Path: "package.json"}.Resolved()
	if got.Format != FormatJSON || got.Field != "version" {
		t.Errorf("Resolved() = %+v", got)
	}

	raw := File{Path: "VERSION"}.Resolved()
	if raw.Field != "" {
		t.Errorf("raw file should have no field, got %q", raw.Field)
	}

	custom := File{Path: "a.yaml", Field: "app.version"}.Resolved()
	if custom.Field != "app.version" {
		t.Errorf("custom field overwritten: %q", custom.Field)
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		content string
		want    string
	}{
		{
			name:    "json top level",
			file:    File{Path: "package.json"},
			content: `{"name": "app", "version": "1.0.0"}`,
			want:    "2.0.0",
		},
		{
			name:    "json nested",
			file:    File{Path: "meta.json", Field: "package.version"},
			content: `{"package": {"version": "1.0.0"}}`,
			want:    "2.0.0",
		},
		{
			name:    "yaml",
			file:    File{Path: "Chart.yaml"},
			content: "name: chart\nversion: 1.0.0\n",
			want:    "2.0.0",
		},
		{
			name:    "yaml creates missing parents",
			file:    File{Path: "app.yaml", Field: "app.meta.version"},
			content: "name: x\n",
			want:    "2.0.0",
		},
		{
			name:    "toml",
			file:    File{Path: "pyproject.toml", Field: "project.version"},
			content: "[project]\nname = \"x\"\nversion = \"1.0.0\"\n",
			want:    "2.0.0",
		},
		{
			name:    "raw",
			file:    File{Path: "VERSION"},
			content: "1.0.0\n",
			want:    "2.0.0",
		},
		{
			name:    "regex",
			file:    File{Path: "version.py", Format: FormatRegex, Pattern: `__version__ = "(.*?)"`},
			content: "__version__ = \"1.0.0\"\nother = \"1.0.0\"\n",
			want:    "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile(tt.file.Path, []byte(tt.content))

			if err := NewWriter(fs).Write(context.Background(), tt.file, tt.want); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			got, err := NewReader(fs).Read(context.Background(), tt.file)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("version = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriter_JSONPreservesKeyOrder(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("package.json", []byte("{\n  \"name\": \"app\",\n  \"version\": \"1.0.0\",\n  \"private\": true\n}"))

	if err := NewWriter(fs).Write(context.Background(), File{Path: "package.json"}, "1.1.0"); err != nil {
		t.Fatal(err)
	}
	data, _ := fs.GetFile("package.json")
	want := "{\n  \"name\": \"app\",\n  \"version\": \"1.1.0\",\n  \"private\": true\n}\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriter_RegexFirstMatchOnly(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("version.go", []byte("const Version = \"1.0.0\"\nconst Old = \"1.0.0\"\n"))

	f := File{Path: "version.go", Format: FormatRegex, Pattern: `Version = "([^"]+)"`}
	if err := NewWriter(fs).Write(context.Background(), f, "1.1.0-dev"); err != nil {
		t.Fatal(err)
	}
	data, _ := fs.GetFile("version.go")
	if !strings.Contains(string(data), "const Version = \"1.1.0-dev\"") {
		t.Errorf("first match not replaced:\n%s", data)
	}
	if !strings.Contains(string(data), "const Old = \"1.0.0\"") {
		t.Errorf("later match should be untouched:\n%s", data)
	}
}

func TestWriter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		content string
		wantFmt bool
	}{
		{name: "empty path", file: File{}},
		{name: "unknown format", file: File{Path: "x", Format: "ini"}, content: "x", wantFmt: true},
		{name: "regex missing pattern", file: File{Path: "x", Format: FormatRegex}, content: "x"},
		{name: "regex without group", file: File{Path: "x", Format: FormatRegex, Pattern: `v\d+`}, content: "v1"},
		{name: "regex no match", file: File{Path: "x", Format: FormatRegex, Pattern: `v(\d+)`}, content: "none"},
		{name: "invalid yaml", file: File{Path: "a.yaml"}, content: "a: [unclosed"},
		{name: "invalid json", file: File{Path: "package.json"}, content: `{"version": "1.0.0"`, wantFmt: true},
		{name: "nested through scalar", file: File{Path: "a.yaml", Field: "name.version"}, content: "name: x\n"},
		{name: "missing file", file: File{Path: "missing.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			if tt.content != "" {
				fs.SetFile(tt.file.Path, []byte(tt.content))
			}
			err := NewWriter(fs).Write(context.Background(), tt.file, "1.0.0")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantFmt && !errors.Is(err, core.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestWriter_WriteAllStopsOnError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("VERSION", []byte("1.0.0\n"))

	files := []File{
		{Path: "missing.json"},
		{Path: "VERSION"},
	}
	if err := NewWriter(fs).WriteAll(context.Background(), files, "2.0.0"); err == nil {
		t.Fatal("expected error")
	}
	data, _ := fs.GetFile("VERSION")
	if string(data) != "1.0.0\n" {
		t.Errorf("VERSION should be untouched, got %q", data)
	}
}

func TestReader_Errors(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("a.json", []byte(`{"version": 3}`))
	fs.SetFile("b.json", []byte(`not json`))
	fs.SetFile("c.toml", []byte("[package]\nname = \"x\"\n"))

	r := NewReader(fs)
	for _, f := range []File{
		{Path: "a.json"},
		{Path: "b.json"},
		{Path: "c.toml", Field: "package.version"},
	} {
		if _, err := r.Read(context.Background(), f); err == nil {
			t.Errorf("Read(%s) expected error", f.Path)
		}
	}
}

func TestWriter_CheckAllNeverWrites(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("package.json", []byte(`{"version": "1.0.0"}`))
	fs.SetFile("build.gradle", []byte("version = '1.0.0'\n"))
	w := NewWriter(fs)

	ok := []File{
		{Path: "package.json"},
		{Path: "build.gradle", Format: FormatRegex, Pattern: `version = '([^']*)'`},
		{Path: "VERSION"},
	}
	if err := w.CheckAll(context.Background(), ok, "1.1.0"); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}

	bad := append(ok, File{Path: "gradle.properties", Format: FormatRegex, Pattern: `ver=(\S+)`})
	fs.SetFile("gradle.properties", []byte("name=demo\n"))
	err := w.CheckAll(context.Background(), bad, "1.1.0")
	if err == nil || !strings.Contains(err.Error(), "gradle.properties") {
		t.Fatalf("expected an error naming gradle.properties, got %v", err)
	}

	if fs.Writes != 0 {
		t.Errorf("CheckAll wrote %d files", fs.Writes)
	}
	if _, exists := fs.GetFile("VERSION"); exists {
		t.Error("raw files must not be created by CheckAll")
	}
}
