package markup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseClosingStyle(t *testing.T) {
	for input, expected := range map[string]ClosingStyle{
		"":      ClosingNone,
		"none":  ClosingNone,
		"Tag":   ClosingTag,
		"slash": ClosingSlash,
	} {
		style, err := ParseClosingStyle(input)
		if err != nil {
			t.Fatalf("%q: %s", input, err)
		}
		if style != expected {
			t.Fatalf("%q: expected %s, got %s", input, expected, style)
		}
	}
	if _, err := ParseClosingStyle("xml"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestParseQuoteStyle(t *testing.T) {
	for input, expected := range map[string]QuoteStyle{
		"":       QuoteDouble,
		"double": QuoteDouble,
		"2":      QuoteDouble,
		"single": QuoteSingle,
		"1":      QuoteSingle,
		"SMART":  QuoteSmart,
		"0":      QuoteSmart,
	} {
		style, err := ParseQuoteStyle(input)
		if err != nil {
			t.Fatalf("%q: %s", input, err)
		}
		if style != expected {
			t.Fatalf("%q: expected %s, got %s", input, expected, style)
		}
	}
	if _, err := ParseQuoteStyle("backtick"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestParseSingleTag(t *testing.T) {
	tag, err := ParseSingleTag("rect")
	if err != nil {
		t.Fatal(err)
	}
	if !tag.Match("rect") || tag.Match("rectangle") || tag.String() != "rect" {
		t.Fatalf("unexpected exact match behavior for %s", tag)
	}

	tag, err = ParseSingleTag("/^X-/i")
	if err != nil {
		t.Fatal(err)
	}
	if !tag.Match("x-icon") || tag.Match("icon-x") || tag.String() != "/^X-/i" {
		t.Fatalf("unexpected pattern match behavior for %s", tag)
	}

	// a lone slash or a path is not a pattern
	for _, name := range []string{"/", "/path", "a/b"} {
		tag, err := ParseSingleTag(name)
		if err != nil || !tag.Match(name) {
			t.Fatalf("%q: expected exact tag, got %v", name, err)
		}
	}

	for _, bad := range []string{"/(/", "/a/g"} {
		if _, err := ParseSingleTag(bad); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("%q: expected ErrInvalidOption, got %v", bad, err)
		}
	}
}

func TestSingleTagFirstMatchWins(t *testing.T) {
	opts := (&Options{SingleTags: []SingleTag{MustParseSingleTag("/^x/"), Exact("y")}}).resolve()
	if !opts.isSingleTag("xs") || !opts.isSingleTag("y") || opts.isSingleTag("z") {
		t.Fatalf("unexpected single tag matching")
	}
}

func TestResolveDefaults(t *testing.T) {
	var nilOpts *Options
	for _, opts := range []Options{nilOpts.resolve(), (&Options{}).resolve()} {
		if len(opts.SingleTags) != 17 {
			t.Fatalf("expected 17 default single tags, got %d", len(opts.SingleTags))
		}
		if opts.ClosingSingleTag != ClosingNone || opts.QuoteStyle != QuoteDouble || opts.QuoteWhenRequired || opts.NoReplaceQuote {
			t.Fatalf("unexpected defaults: %+v", opts)
		}
	}
	if len(DefaultOptions().SingleTags) != 17 {
		t.Fatalf("expected DefaultOptions to carry the default single tags")
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	tags := DefaultSingleTags()
	tags[0] = Exact("rect")
	DefaultOptions().SingleTags[0] = Exact("rect")

	if DefaultSingleTags()[0].String() != "area" {
		t.Fatalf("default single tags were modified through a copy")
	}
	AssertRender(t, Node{Tag: "area"}, "<area>")
	AssertRender(t, Node{Tag: "rect"}, "<rect></rect>")
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions([]byte(`
singleTags: [rect, "/^%.*%$/"]
closingSingleTag: slash
quoteAllAttributes: false
quoteStyle: 0
replaceQuote: false
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.SingleTags) != 2 || opts.ClosingSingleTag != ClosingSlash || !opts.QuoteWhenRequired ||
		opts.QuoteStyle != QuoteSmart || !opts.NoReplaceQuote {
		t.Fatalf("unexpected options: %+v", opts)
	}
	AssertRenderWith(t, []any{Node{Tag: "%=x%"}, Node{Tag: "rect", Attrs: Attrs{{"d", `say "q"`}}}}, opts, `<%=x% /><rect d='say "q"' />`)

	// JSON works too, and unset keys keep their defaults
	opts, err = LoadOptions([]byte(`{"quoteStyle": "single"}`))
	if err != nil {
		t.Fatal(err)
	}
	if opts.SingleTags != nil || opts.QuoteStyle != QuoteSingle || opts.QuoteWhenRequired || opts.NoReplaceQuote {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = LoadOptions(nil)
	if err != nil || opts.SingleTags != nil {
		t.Fatalf("expected defaults from an empty document, got %+v, %v", opts, err)
	}

	for _, bad := range []string{`closingSingleTag: xml`, `quoteStyle: fancy`, `singleTags: ["/(/"]`} {
		if _, err := LoadOptions([]byte(bad)); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("%q: expected ErrInvalidOption, got %v", bad, err)
		}
	}
	if _, err := LoadOptions([]byte(`singleTags: {a: b}`)); err == nil {
		t.Fatalf("expected a decoding error")
	}
}

func TestReadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("closingSingleTag: tag\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := ReadOptionsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	AssertRenderWith(t, Node{Tag: "br"}, opts, "<br></br>")

	if _, err := ReadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}
