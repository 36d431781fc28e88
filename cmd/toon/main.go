// Command toon exercises the codec's programmatic interface from the
// shell: encoding JSON into TOON, decoding TOON back into JSON (strict or
// lenient), and streaming either direction over stdin/stdout.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.SetOutput(os.Stderr)
		log.Fatalf("toon: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "toon",
		Short:        "Encode and decode Token-Oriented Object Notation documents",
		SilenceUsage: true,
	}
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	return root
}
