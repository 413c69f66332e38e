package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tipee-sa/markup"
)

var errNoInput = errors.New("no input: pass a file or pipe a tree on stdin")

func renderCmd() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render trees to HTML",
		Long: `Render decodes each JSON or YAML file and writes the concatenated HTML.
Use - to read from stdin; stdin is read when no file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if in, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(in) {
					return errNoInput
				}
				args = []string{"-"}
			}

			// render everything before touching the output, which may also be an input
			var buf bytes.Buffer
			for _, path := range args {
				data, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				tree, err := markup.Decode(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := markup.Write(&buf, tree, opts); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			if output != "" {
				return writeOutput(output, buf.Bytes())
			}
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write HTML to this file instead of stdout")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
