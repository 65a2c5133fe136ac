package cli

import (
    "encoding/json"
    "fmt"
    "io"

    "github.com/spf13/cobra"
    "gopkg.in/yaml.v3"

    "pentu/internal/tools"
    "pentu/internal/ui"
)

var checkOutput string

func init() {
    rootCmd.AddCommand(checkCmd)
    checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "text", "output format: text, json, yaml")
}

var checkCmd = &cobra.Command{
    Use:     "check",
    Aliases: []string{"tools"},
    Short:   "Check which supported tools are installed",
    Args:    cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        return printTools(cmd.OutOrStdout(), checkOutput)
    },
}

func printTools(w io.Writer, format string) error {
    entries := tools.NewRegistry().CheckAll().Sorted()
    switch format {
    case "", "text":
        fmt.Fprintln(w, ui.ToolTable(entries))
        return nil
    case "json":
        enc := json.NewEncoder(w)
        enc.SetIndent("", "  ")
        return enc.Encode(entries)
    case "yaml":
        enc := yaml.NewEncoder(w)
        enc.SetIndent(2)
        defer enc.Close()
        return enc.Encode(entries)
    default:
        return fmt.Errorf("unknown output format %q (text, json, yaml)", format)
    }
}
