// A cobra "version" subcommand backed by the version package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgc202/groqkit/version"
)

func main() {
	var jsonOutput bool

	root := &cobra.Command{
		Use:   "groqctl",
		Short: "groqkit example CLI",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if jsonOutput {
				s, err := info.ToJSONIndent()
				if err != nil {
					return err
				}
				fmt.Println(s)
				return nil
			}
			fmt.Println(info.Text())
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	root.AddCommand(versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
