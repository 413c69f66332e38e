package main

import (
	"github.com/spf13/pflag"

	"github.com/tipee-sa/markup"
)

// optionFlags are the rendering flags shared by render, options and serve.
type optionFlags struct {
	optionsFile       string
	singleTags        []string
	closingSingleTag  string
	quoteStyle        string
	quoteWhenRequired bool
	noReplaceQuote    bool
}

func (f *optionFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.optionsFile, "options", "c", "", "JSON or YAML options file")
	flags.StringArrayVar(&f.singleTags, "single-tag", nil, "tag rendered without closing pair, /pattern/ for a regular expression (repeatable, replaces the defaults)")
	flags.StringVar(&f.closingSingleTag, "closing-single-tag", "none", "how single tags are closed: none, tag or slash")
	flags.StringVar(&f.quoteStyle, "quote-style", "double", "attribute quote character: double, single or smart")
	flags.BoolVar(&f.quoteWhenRequired, "quote-when-required", false, "quote attribute values only when empty or containing whitespace")
	flags.BoolVar(&f.noReplaceQuote, "no-replace-quote", false, "keep quote characters inside attribute values unescaped")
}

// options merges the defaults, the options file and the flags set on the
// command line, in that order.
func (f *optionFlags) options(flags *pflag.FlagSet) (*markup.Options, error) {
	opts := &markup.Options{}
	if f.optionsFile != "" {
		var err error
		if opts, err = markup.ReadOptionsFile(f.optionsFile); err != nil {
			return nil, err
		}
	}

	if flags.Changed("single-tag") {
		opts.SingleTags = make([]markup.SingleTag, 0, len(f.singleTags))
		for _, s := range f.singleTags {
			tag, err := markup.ParseSingleTag(s)
			if err != nil {
				return nil, err
			}
			opts.SingleTags = append(opts.SingleTags, tag)
		}
	}
	if flags.Changed("closing-single-tag") {
		style, err := markup.ParseClosingStyle(f.closingSingleTag)
		if err != nil {
			return nil, err
		}
		opts.ClosingSingleTag = style
	}
	if flags.Changed("quote-style") {
		style, err := markup.ParseQuoteStyle(f.quoteStyle)
		if err != nil {
			return nil, err
		}
		opts.QuoteStyle = style
	}
	if flags.Changed("quote-when-required") {
		opts.QuoteWhenRequired = f.quoteWhenRequired
	}
	if flags.Changed("no-replace-quote") {
		opts.NoReplaceQuote = f.noReplaceQuote
	}
	return opts, nil
}
