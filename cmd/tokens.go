package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal/gosource"
	"github.com/marcioaug/Refazer-sub001/internal/types"
)

var showStatements bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token sequence a file is learned over",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := gosource.ParseFile(args[0])
		if err != nil {
			logger.Error("Error parsing file", zap.String("file", args[0]), zap.Error(err))
			os.Exit(1)
		}
		if err := printTokens(os.Stdout, doc, showStatements); err != nil {
			logger.Error("Error printing tokens", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&showStatements, "statements", false, "Also print the statement regions")
}

func printTokens(w io.Writer, doc *gosource.Document, statements bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tKIND\tVALUE\tCATEGORY\tPOSITION")
	for i := 0; i < doc.Len(); i++ {
		e := doc.Element(i)
		value := e.Value()
		if e.Implicit() {
			value = "(newline)"
		}
		start, _ := doc.Positions(types.Region{Start: i, Len: 1})
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d:%d\n", i, e.Kind(), value, e.Category(), start.Line, start.Column)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !statements {
		return nil
	}
	fmt.Fprintln(w, "\nstatements:")
	for _, r := range doc.Statements() {
		fmt.Fprintf(w, "  %s %s\n", r, doc.Text(r))
	}
	return nil
}
