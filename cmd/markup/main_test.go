package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tipee-sa/markup"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRenderStdin(t *testing.T) {
	out, err := execute(t, `{"tag":"br","content":["test"]}`, "render", "--closing-single-tag", "slash")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<br />test" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderFiles(t *testing.T) {
	first := writeFile(t, "a.json", `{"tag":"a","attrs":{"href":"/about/me/"}}`)
	second := writeFile(t, "b.yaml", "- tag: img\n  attrs:\n    onload: testFunc(\"test\")\n")
	options := writeFile(t, "options.yaml", "quoteAllAttributes: false\nquoteStyle: smart\n")

	out, err := execute(t, "", "render", "-c", options, first, second)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if expected := `<a href=/about/me/></a><img onload=testFunc("test")>`; out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}

	// flags override the options file
	out, err = execute(t, "", "render", "-c", options, "--quote-when-required=false", "--no-replace-quote", second)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if expected := `<img onload='testFunc("test")'>`; out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestRenderOutputFile(t *testing.T) {
	input := writeFile(t, "tree.json", `[{"tag":"rect"},{"tag":"%=title%"}]`)
	output := filepath.Join(t.TempDir(), "out.html")

	if _, err := execute(t, "", "render", "--single-tag", "rect", "--single-tag", "/^%.*%$/", "-o", output, input); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<rect><%=title%>" {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestRenderOutputOverInput(t *testing.T) {
	path := writeFile(t, "page.json", `{"tag":"p","content":"hi"}`)

	if _, err := execute(t, "", "render", "-o", path, path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>hi</p>" {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestRenderFailureKeepsOutput(t *testing.T) {
	input := writeFile(t, "bad.json", `{"tag":true}`)
	output := writeFile(t, "out.html", "<p>old</p>")

	if _, err := execute(t, "", "render", "-o", output, input); !errors.Is(err, markup.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>old</p>" {
		t.Fatalf("output was modified: %q", data)
	}

	if _, err := execute(t, "", "render", "-o", filepath.Join(t.TempDir(), "missing", "out.html"), writeFile(t, "ok.json", `"x"`)); err == nil {
		t.Fatalf("expected an error for an unwritable output")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := execute(t, `{"tag":1}`, "render"); !errors.Is(err, markup.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := execute(t, "", "render", "--quote-style", "fancy"); !errors.Is(err, markup.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestOptionsTable(t *testing.T) {
	out, err := execute(t, "", "options", "--quote-style", "single", "--single-tag", "rect")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	for _, want := range []string{"closingSingleTag", "none", "quoteStyle", "single", "rect", "replaceQuote", "true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}

	out, err = execute(t, "", "options")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if !strings.Contains(out, "area base br col command") {
		t.Fatalf("expected the default single tags in\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "markup dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}
