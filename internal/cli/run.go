package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pentu/internal/app"
	"pentu/internal/runner"
)

var (
	runTimeout time.Duration
	runSave    bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "kill the command after this long (default timeouts.default)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "save stdout without asking")
}

var runCmd = &cobra.Command{
	Use:   "run -- COMMAND [ARGS...]",
	Short: "Run a custom shell command and optionally save its output",
	Long: `Run a command line through the configured shell. The line is passed
as-is, so quoting and pipes work the way they do in a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.New(conf, cmd.OutOrStdout())
		timeout := runTimeout
		if timeout <= 0 {
			timeout = conf.DefaultTimeout()
		}
		interactive := stdinIsTerminal()
		confirm := func(runner.Result) bool {
			if runSave {
				return true
			}
			return interactive && askYesNo(cmd.OutOrStdout(), cmd.InOrStdin(), "Save output to file?")
		}
		so := a.Session.Custom(cmd.Context(), strings.Join(args, " "), timeout, confirm)
		if so.SaveErr != nil {
			return so.SaveErr
		}
		if !so.Result.Success {
			return errors.New(so.Result.Summary())
		}
		return nil
	},
}
