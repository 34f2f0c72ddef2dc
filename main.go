package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/godnnf/repl"
)

const longHelp = `Manipulate d-DNNF formulae.

Commands are read from standard input, or from a file with --cmd. Commands are:

  cond [partial model] - conditions the graph according to partial model
  h, help - displays command help
  load filename - loads a graph from file
  mc [partial model] - count models
  min filename - minimize objective function in file under the graph
  mintr filename - keep models that minimize objective function in file only
  model [partial model] - display a valid model, if any
  nodes - display number of nodes
  p - prints graph on standard output in d-DNNF format
  q - quits program
  store filename - saves graph in d-DNNF format in filename
  vars - display number of vars
  w filename - loads weights from file`

func main() {
	var cmdFile string
	rootCmd := &cobra.Command{
		Use:          "godnnf",
		Short:        "godnnf is a reasoner over d-DNNF boolean circuits",
		Long:         longHelp,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if cmdFile != "" {
				f, err := os.Open(cmdFile)
				if err != nil {
					return fmt.Errorf("could not open command file %q: %v", cmdFile, err)
				}
				defer f.Close()
				in = f
			}
			return repl.Run(in, os.Stdout)
		},
	}
	rootCmd.Flags().StringVar(&cmdFile, "cmd", "", "file from which commands are to be read (stdin as default)")
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
