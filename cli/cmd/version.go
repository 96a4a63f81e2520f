package cmd

import (
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

// Revision is set at build time with
// -ldflags "-X github.com/Factom-Asset-Tokens/fatgo/cli/cmd.Revision=..."
var Revision = "development"

var versionCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the fat-cli and fatd versions",
		Args:  cobra.ExactArgs(0),
		Run:   version,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["version"] = complete.Command{Flags: apiCmplFlags}
	rootCmplCmd.Sub["help"].Sub["version"] = complete.Command{}
	return cmd
}()

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("fat-cli: %v\n", Revision)
	properties, err := FATClient.GetDaemonProperties()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("fatd:    %v\n", properties.FatdVersion)
	fmt.Printf("API:     %v\n", properties.APIVersion)
}
