package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	toon "github.com/datatoon/toon"
)

type decodeFlags struct {
	delimiter string
	lenient   bool
	streaming bool
	indent    string
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{delimiter: ",", indent: "  "}
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert a TOON document on stdin (or a file) into JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, flags)
		},
	}
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", flags.delimiter, "tabular/array cell delimiter")
	cmd.Flags().BoolVar(&flags.lenient, "lenient", false, "use the error-recovering decoder and report diagnostics on stderr")
	cmd.Flags().BoolVar(&flags.streaming, "stream", false, "treat the input as a streamed tabular/regular-list document")
	cmd.Flags().StringVar(&flags.indent, "json-indent", flags.indent, "indentation used for the emitted JSON")
	return cmd
}

func runDecode(cmd *cobra.Command, args []string, flags *decodeFlags) error {
	src, err := openInput(args)
	if err != nil {
		return err
	}
	defer src.Close()

	if len(flags.delimiter) != 1 {
		return fmt.Errorf("--delimiter must be exactly one character, got %q", flags.delimiter)
	}
	opts := []toon.DecodeOption{toon.WithDecodeDelimiter(rune(flags.delimiter[0]))}

	if flags.streaming {
		return runStreamDecode(cmd.OutOrStdout(), src, flags, opts)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var v toon.Value
	if flags.lenient {
		var diags []toon.Diagnostic
		v, diags = toon.DecodeLenient(data, opts...)
		for _, d := range diags {
			fmt.Fprintln(cmd.ErrOrStderr(), d.String())
		}
	} else {
		v, err = toon.Decode(data, opts...)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", flags.indent)
	return enc.Encode(toon.ToAny(v))
}

func runStreamDecode(w io.Writer, src io.Reader, flags *decodeFlags, opts []toon.DecodeOption) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprint(bw, "[")
	first := true
	for v, err := range toon.StreamDecodeRows(src, opts...) {
		if err != nil {
			return err
		}
		if !first {
			fmt.Fprint(bw, ",")
		}
		first = false
		encoded, err := json.Marshal(toon.ToAny(v))
		if err != nil {
			return err
		}
		bw.Write(encoded)
	}
	fmt.Fprintln(bw, "]")
	return nil
}
