package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

var methodsFamily string

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the TONX methods served by the gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderMethods(cmd.OutOrStdout(), methodsFamily)
	},
}

func init() {
	methodsCmd.Flags().StringVar(&methodsFamily, "family", "", "only list methods of this endpoint family (default, labs)")
}

// endpointPaths maps each family to the backend path it is sent to.
var endpointPaths = map[provider.Family]string{
	provider.FamilyDefault: "/v2/json-rpc/{api-key}",
	provider.FamilyLabs:    "/v2/labs/{api-key}",
}

func renderMethods(w io.Writer, family string) error {
	if family != "" {
		if _, ok := endpointPaths[provider.Family(family)]; !ok {
			return fmt.Errorf("unknown family %q", family)
		}
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Method", "Family", "Endpoint").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt)

	count := 0
	for _, method := range provider.Methods() {
		f, _ := provider.FamilyOf(method)
		if family != "" && string(f) != family {
			continue
		}
		tbl.AddRow(method, f, endpointPaths[f])
		count++
	}

	tbl.Print()
	fmt.Fprintf(w, "\n%d methods\n", count)
	return nil
}
