package markup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// optionsFile mirrors Options with the option names used in JSON and YAML
// option files. Unset fields keep their defaults.
type optionsFile struct {
	SingleTags         []string `yaml:"singleTags"`
	ClosingSingleTag   *string  `yaml:"closingSingleTag"`
	QuoteAllAttributes *bool    `yaml:"quoteAllAttributes"`
	QuoteStyle         *string  `yaml:"quoteStyle"`
	ReplaceQuote       *bool    `yaml:"replaceQuote"`
}

// LoadOptions parses a JSON or YAML options document:
//
//	singleTags: [rect, "/^%.*%$/"]
//	closingSingleTag: slash
//	quoteAllAttributes: false
//	quoteStyle: smart
//	replaceQuote: true
func LoadOptions(data []byte) (*Options, error) {
	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}

	opts := &Options{}
	if file.SingleTags != nil {
		opts.SingleTags = make([]SingleTag, 0, len(file.SingleTags))
		for _, s := range file.SingleTags {
			tag, err := ParseSingleTag(s)
			if err != nil {
				return nil, err
			}
			opts.SingleTags = append(opts.SingleTags, tag)
		}
	}
	if file.ClosingSingleTag != nil {
		style, err := ParseClosingStyle(*file.ClosingSingleTag)
		if err != nil {
			return nil, err
		}
		opts.ClosingSingleTag = style
	}
	if file.QuoteAllAttributes != nil {
		opts.QuoteWhenRequired = !*file.QuoteAllAttributes
	}
	if file.QuoteStyle != nil {
		style, err := ParseQuoteStyle(*file.QuoteStyle)
		if err != nil {
			return nil, err
		}
		opts.QuoteStyle = style
	}
	if file.ReplaceQuote != nil {
		opts.NoReplaceQuote = !*file.ReplaceQuote
	}
	return opts, nil
}

// ReadOptionsFile loads the options file at path.
func ReadOptionsFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := LoadOptions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
