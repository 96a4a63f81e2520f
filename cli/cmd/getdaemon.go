package cmd

import (
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var getDaemonCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "daemon",
		Aliases:               []string{"properties", "sync"},
		Short:                 "Get fatd's version and sync status",
		Args:                  cobra.ExactArgs(0),
		Run:                   getDaemon,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["daemon"] = getDaemonCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["daemon"] = complete.Command{}
	generateCmplFlags(cmd, getDaemonCmplCmd.Flags)
	return cmd
}()

var getDaemonCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func getDaemon(_ *cobra.Command, _ []string) {
	log.Debug("Fetching daemon properties...")
	props, err := FATClient.GetDaemonProperties()
	if err != nil {
		log.Fatal(err)
	}
	log.Debug("Fetching sync status...")
	status, err := FATClient.GetSyncStatus()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf(`fatd Version: %v
API Version: %v
Factom Network ID: %v
Sync Height: %v
Factom Height: %v
`,
		props.FatdVersion, props.APIVersion, props.NetworkID,
		status.Sync, status.Current)
}
