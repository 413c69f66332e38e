package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tipee-sa/markup"
)

func optionsCmd() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the options render would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			writeOptionsTable(cmd.OutOrStdout(), opts)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func writeOptionsTable(w io.Writer, opts *markup.Options) {
	singleTags := opts.SingleTags
	if singleTags == nil {
		singleTags = markup.DefaultSingleTags()
	}
	names := make([]string, 0, len(singleTags))
	for _, tag := range singleTags {
		names = append(names, tag.String())
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Option", "Value"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	table.Append([]string{"singleTags", strings.Join(names, " ")})
	table.Append([]string{"closingSingleTag", opts.ClosingSingleTag.String()})
	table.Append([]string{"quoteAllAttributes", strconv.FormatBool(!opts.QuoteWhenRequired)})
	table.Append([]string{"quoteStyle", opts.QuoteStyle.String()})
	table.Append([]string{"replaceQuote", strconv.FormatBool(!opts.NoReplaceQuote)})
	table.Render()
}
