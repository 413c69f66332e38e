package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// ClosingStyle controls how single tags are closed.
type ClosingStyle int

const (
	// ClosingNone writes <br>.
	ClosingNone ClosingStyle = iota
	// ClosingTag writes <br></br>.
	ClosingTag
	// ClosingSlash writes <br />.
	ClosingSlash
)

var closingStyleNames = map[ClosingStyle]string{
	ClosingNone:  "none",
	ClosingTag:   "tag",
	ClosingSlash: "slash",
}

func (c ClosingStyle) String() string {
	if name, ok := closingStyleNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ClosingStyle(%d)", int(c))
}

// ParseClosingStyle accepts none, tag or slash.
func ParseClosingStyle(s string) (ClosingStyle, error) {
	for style, name := range closingStyleNames {
		if strings.EqualFold(s, name) {
			return style, nil
		}
	}
	if s == "" || strings.EqualFold(s, "default") {
		return ClosingNone, nil
	}
	return ClosingNone, fmt.Errorf("closing single tag %q: %w", s, ErrInvalidOption)
}

// QuoteStyle selects the character wrapping quoted attribute values.
type QuoteStyle int

const (
	// QuoteDouble always uses ".
	QuoteDouble QuoteStyle = iota
	// QuoteSingle always uses '.
	QuoteSingle
	// QuoteSmart uses " unless the value contains one, then '.
	QuoteSmart
)

var quoteStyleNames = map[QuoteStyle]string{
	QuoteDouble: "double",
	QuoteSingle: "single",
	QuoteSmart:  "smart",
}

func (q QuoteStyle) String() string {
	if name, ok := quoteStyleNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QuoteStyle(%d)", int(q))
}

// ParseQuoteStyle accepts double, single or smart, and the numeric forms
// 0 (smart), 1 (single) and 2 (double) used by existing option files.
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch strings.ToLower(s) {
	case "double", "2", "":
		return QuoteDouble, nil
	case "single", "1":
		return QuoteSingle, nil
	case "smart", "0":
		return QuoteSmart, nil
	}
	return QuoteDouble, fmt.Errorf("quote style %q: %w", s, ErrInvalidOption)
}

// Matcher is satisfied by *regexp.Regexp.
type Matcher interface {
	MatchString(s string) bool
}

// SingleTag matches tag names rendered without a content wrapping pair.
// It is either an exact name or a pattern.
type SingleTag struct {
	name    string
	pattern Matcher
}

// Exact matches the tag called name.
func Exact(name string) SingleTag {
	return SingleTag{name: name}
}

// Pattern matches every tag accepted by m.
func Pattern(m Matcher) SingleTag {
	return SingleTag{pattern: m}
}

// ParseSingleTag reads "/expr/flags" as an ECMAScript regular expression and
// anything else as an exact tag name. Supported flags are i and m.
func ParseSingleTag(s string) (SingleTag, error) {
	end := strings.LastIndexByte(s, '/')
	if len(s) < 2 || s[0] != '/' || end == 0 {
		return Exact(s), nil
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, flag := range s[end+1:] {
		switch flag {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		default:
			return SingleTag{}, fmt.Errorf("single tag %s: unsupported flag %q: %w", s, flag, ErrInvalidOption)
		}
	}
	re, err := regexp2.Compile(s[1:end], opts)
	if err != nil {
		return SingleTag{}, fmt.Errorf("single tag %s: %v: %w", s, err, ErrInvalidOption)
	}
	return Pattern(ecmaPattern{re: re, source: s}), nil
}

// MustParseSingleTag is like ParseSingleTag but panics on error.
func MustParseSingleTag(s string) SingleTag {
	tag, err := ParseSingleTag(s)
	if err != nil {
		panic(err)
	}
	return tag
}

func (s SingleTag) Match(tag string) bool {
	if s.pattern != nil {
		return s.pattern.MatchString(tag)
	}
	return s.name == tag
}

func (s SingleTag) String() string {
	if s.pattern == nil {
		return s.name
	}
	switch p := s.pattern.(type) {
	case ecmaPattern:
		return p.source
	case *regexp.Regexp:
		return "/" + p.String() + "/"
	case fmt.Stringer:
		return p.String()
	}
	return fmt.Sprintf("%v", s.pattern)
}

type ecmaPattern struct {
	re     *regexp2.Regexp
	source string
}

func (p ecmaPattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// defaultSingleTags is only read; callers get copies from DefaultSingleTags.
var defaultSingleTags = []SingleTag{
	Exact("area"),
	Exact("base"),
	Exact("br"),
	Exact("col"),
	Exact("command"),
	Exact("embed"),
	Exact("hr"),
	Exact("img"),
	Exact("input"),
	Exact("keygen"),
	Exact("link"),
	Exact("menuitem"),
	Exact("meta"),
	Exact("param"),
	Exact("source"),
	Exact("track"),
	Exact("wbr"),
}

// DefaultSingleTags returns the void elements treated as single tags when
// Options.SingleTags is nil. The slice is a fresh copy.
func DefaultSingleTags() []SingleTag {
	return append([]SingleTag(nil), defaultSingleTags...)
}

// Options controls rendering. The zero value, like a nil *Options, renders
// with the defaults.
type Options struct {
	// SingleTags lists the tags never wrapping their content. Nil means
	// DefaultSingleTags(); an empty non-nil slice disables single tags.
	SingleTags []SingleTag
	// ClosingSingleTag is how single tags are closed. Default ClosingNone.
	ClosingSingleTag ClosingStyle
	// QuoteWhenRequired leaves attribute values unquoted unless they are
	// empty or contain whitespace. Whitespace is space and tab plus LF, FF
	// and CR, since an unquoted line break would split the attribute.
	// By default every value is quoted.
	QuoteWhenRequired bool
	// QuoteStyle selects the quote character. Default QuoteDouble.
	QuoteStyle QuoteStyle
	// NoReplaceQuote keeps the quote character unescaped inside attribute
	// values. By default it is replaced by &quot; or &#39;.
	NoReplaceQuote bool
}

// DefaultOptions returns the fallback configuration with SingleTags filled in.
func DefaultOptions() *Options {
	return &Options{SingleTags: DefaultSingleTags()}
}

// resolve returns a copy of o with the defaults filled in.
func (o *Options) resolve() Options {
	var resolved Options
	if o != nil {
		resolved = *o
	}
	if resolved.SingleTags == nil {
		resolved.SingleTags = defaultSingleTags
	}
	return resolved
}

// isSingleTag reports whether tag matches one of the configured single tags.
func (o *Options) isSingleTag(tag string) bool {
	for _, single := range o.SingleTags {
		if single.Match(tag) {
			return true
		}
	}
	return false
}
