package cli

import (
    "fmt"

    "github.com/spf13/cobra"

    appver "pentu/internal/version"
)

func init() {
    rootCmd.AddCommand(versionCmd)
    rootCmd.Version = appver.AppVersion
}

var versionCmd = &cobra.Command{
    Use:   "version",
    Short: "Print the pentu version",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        fmt.Fprintf(cmd.OutOrStdout(), "pentu %s\n", appver.AppVersion)
        return nil
    },
}
