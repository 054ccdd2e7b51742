package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRoot(os.Stdout, os.Stderr).Root.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootT holds the command tree and the state shared by its commands.
type rootT struct {
	Root      *cobra.Command
	verbosity int
	log       logr.Logger
}

func newRoot(stdout, stderr io.Writer) *rootT {
	r := &rootT{log: logr.Discard()}
	r.Root = &cobra.Command{
		Use:   "rangeset",
		Short: "interval set calculator",
		Long: `
Sets are written as half-open int64 intervals, for example "[1,3) [5,10)".
The empty set is written "{}".
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			r.log = funcr.New(func(prefix, args string) {
				if prefix != "" {
					fmt.Fprintf(stderr, "%s: %s\n", prefix, args)
					return
				}
				fmt.Fprintln(stderr, args)
			}, funcr.Options{Verbosity: r.verbosity}).WithName("rangeset")
		},
	}
	r.Root.PersistentFlags().IntVarP(&r.verbosity, "verbosity", "v", 0, "log verbosity")
	r.Root.SetOut(stdout)
	r.Root.SetErr(stderr)

	s := newSetCommands(r)
	r.Root.AddCommand(s.Normalize, s.Union, s.Intersect, s.Subtract, s.Contains)
	return r
}
