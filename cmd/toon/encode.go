package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/spf13/cobra"

	toon "github.com/datatoon/toon"
)

type encodeFlags struct {
	indent    string
	delimiter string
	noLength  bool
	streaming bool
}

func newEncodeCmd() *cobra.Command {
	flags := &encodeFlags{indent: "  ", delimiter: ","}
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert a JSON document on stdin (or a file) into TOON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args, flags)
		},
	}
	cmd.Flags().StringVar(&flags.indent, "indent", flags.indent, "indentation string (spaces/tabs only)")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", flags.delimiter, "tabular/array cell delimiter")
	cmd.Flags().BoolVar(&flags.noLength, "no-length-marker", false, "omit the trailing ':' on non-tabular list headers")
	cmd.Flags().BoolVar(&flags.streaming, "stream", false, "treat the input as a JSON array and stream-encode it")
	return cmd
}

func runEncode(cmd *cobra.Command, args []string, flags *encodeFlags) error {
	src, err := openInput(args)
	if err != nil {
		return err
	}
	defer src.Close()

	if len(flags.delimiter) != 1 {
		return fmt.Errorf("--delimiter must be exactly one character, got %q", flags.delimiter)
	}
	opts := []toon.EncodeOption{
		toon.WithIndent(flags.indent),
		toon.WithDelimiter(rune(flags.delimiter[0])),
		toon.WithLengthMarker(!flags.noLength),
	}

	if flags.streaming {
		return runStreamEncode(cmd.OutOrStdout(), src, opts)
	}

	dec := json.NewDecoder(src)
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decoding JSON input: %w", err)
	}
	out, err := toon.MarshalString(payload, opts...)
	if err != nil {
		return fmt.Errorf("encoding TOON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func runStreamEncode(w io.Writer, src io.Reader, opts []toon.EncodeOption) error {
	dec := json.NewDecoder(src)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding JSON array: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("--stream requires a top-level JSON array")
	}

	var streamErr error
	var items iter.Seq[toon.Value] = func(yield func(toon.Value) bool) {
		for dec.More() {
			var item any
			if err := dec.Decode(&item); err != nil {
				streamErr = fmt.Errorf("decoding JSON array element: %w", err)
				return
			}
			v, err := toon.FromAny(item)
			if err != nil {
				streamErr = fmt.Errorf("converting JSON element: %w", err)
				return
			}
			if !yield(v) {
				return
			}
		}
	}

	bw := bufio.NewWriter(w)
	for chunk := range toon.StreamEncode(items, opts...) {
		if _, err := bw.WriteString(chunk); err != nil {
			return err
		}
	}
	if streamErr != nil {
		return streamErr
	}
	return bw.Flush()
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return f, nil
}
