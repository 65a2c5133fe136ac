package cli

import (
    "encoding/json"
    "fmt"

    "github.com/spf13/cobra"
    "gopkg.in/yaml.v3"

    "pentu/internal/config"
)

var configJSON bool

func init() {
    rootCmd.AddCommand(configCmd)
    configCmd.Flags().BoolVar(&configJSON, "json", false, "print as JSON")
}

var configCmd = &cobra.Command{
    Use:   "config",
    Short: "Show the effective configuration",
    Long: `Print the configuration after merging defaults, the config file,
PENTU_* environment variables and command-line flags.`,
    Args: cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        w := cmd.OutOrStdout()
        src := conf.File
        if src == "" {
            src = "(none, defaults and environment only)"
        }
        if configJSON {
            enc := json.NewEncoder(w)
            enc.SetIndent("", "  ")
            return enc.Encode(conf)
        }
        dir, err := config.Dir()
        if err != nil {
            dir = "(unknown)"
        }
        fmt.Fprintf(w, "# file: %s\n# user config dir: %s\n", src, dir)
        enc := yaml.NewEncoder(w)
        enc.SetIndent(2)
        defer enc.Close()
        return enc.Encode(conf)
    },
}
