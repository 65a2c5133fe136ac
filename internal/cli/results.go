package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pentu/internal/app"
	"pentu/internal/results"
	"pentu/internal/system"
	"pentu/internal/ui"
)

var (
	resultsFilter string
	resultsJSON   bool
	showPretty    bool
	showRaw       bool
)

var resultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "List, show and watch saved reports",
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsLsCmd, resultsShowCmd, resultsBrowseCmd, resultsWatchCmd, resultsSchemaCmd)

	resultsLsCmd.Flags().StringVarP(&resultsFilter, "filter", "f", "", "fuzzy filter on file name")
	resultsLsCmd.Flags().BoolVar(&resultsJSON, "json", false, "output JSON")
	resultsShowCmd.Flags().BoolVar(&showPretty, "pretty", false, "render as markdown")
	resultsShowCmd.Flags().BoolVar(&showRaw, "raw", false, "print the file content only")
}

// newestFirst sorts reports by timestamp, then name, descending.
func newestFirst(list []results.ReportFile) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].Name > list[j].Name
	})
}

var resultsLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved reports, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := results.NewStore(conf.ResultsDir).List()
		if err != nil {
			return err
		}
		newestFirst(list)
		if resultsFilter != "" {
			list = results.Filter(list, resultsFilter)
		}
		w := cmd.OutOrStdout()
		if resultsJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		return printReportList(w, list)
	},
}

func printReportList(w io.Writer, list []results.ReportFile) error {
	if len(list) == 0 {
		ui.Warn(w, "No results found in %s", conf.ResultsDir)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTOOL\tTARGET\tSAVED\tSIZE")
	for _, rf := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rf.Name, rf.Tool, rf.Target,
			rf.Timestamp.Format("2006-01-02 15:04:05"), humanize.Bytes(uint64(rf.Size)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d report(s)\n", len(list))
	return nil
}

var resultsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := results.NewStore(conf.ResultsDir)
		content, err := s.ReadName(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		switch {
		case showRaw:
			_, err = io.WriteString(w, content)
		case showPretty:
			_, err = io.WriteString(w, ui.RenderReport(content, termWidth()))
		case stdoutIsTerminal():
			fmt.Fprintln(w, ui.Frame(strings.TrimRight(content, "\n"), termWidth()))
		default:
			_, err = io.WriteString(w, content)
		}
		return err
	},
}

var resultsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse reports in a full-screen viewer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New(conf, cmd.OutOrStdout()).Browse(cmd.Context())
	},
}

var resultsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log new reports as they are saved (Ctrl+C to stop)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := results.NewStore(conf.ResultsDir)
		w := cmd.OutOrStdout()
		ui.Info(w, "Watching %s", conf.ResultsDir)
		return s.Watch(cmd.Context(), func(rf results.ReportFile) {
			system.Logger.Info("report saved", "name", rf.Name, "tool", rf.Tool, "target", rf.Target, "size", humanize.Bytes(uint64(rf.Size)))
		})
	},
}

var resultsSchemaCmd = &cobra.Command{
	Use:   "schema [reports|result]",
	Short: "Print JSON Schemas for report listings and command results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var v any = results.Schemas()
		if len(args) == 1 {
			sc, ok := results.Schemas()[args[0]]
			if !ok {
				return fmt.Errorf("unknown schema %q (reports, result)", args[0])
			}
			v = sc
		}
		b, err := results.MarshalSchema(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
