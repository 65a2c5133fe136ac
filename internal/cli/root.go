package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pentu/internal/app"
	"pentu/internal/config"
	"pentu/internal/scans"
	"pentu/internal/system"
)

var (
	cfgFile  string
	noBanner bool

	v    = config.New()
	conf config.Config

	auditLog io.Closer
)

// flags kept from the original single-command interface
var (
	legacyTarget      string
	legacyMode        string
	legacyScanType    string
	legacyTool        string
	legacyCheckTools  bool
	legacyInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "pentu",
	Short: "PENTU CLI – terminal front-end for penetration testing tools",
	Long: `PENTU CLI runs third-party security tools (nmap, nikto, sqlmap, hydra, ...)
through one menu and saves their output as timestamped report files.

Use only against systems you are authorized to test.

Examples:
  pentu                                  interactive menu
  pentu check                            show which tools are installed
  pentu scan nmap 10.0.0.0/24 --type fast
  pentu -t https://example.com -m web --tool gobuster
  pentu results ls`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if auditLog != nil {
			_ = auditLog.Close()
		}
	},
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./pentu.yaml, then <config dir>/pentu/config.yaml)")
	pf.String("results-dir", "", "directory for saved reports (default ./pentu-results)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&noBanner, "no-banner", false, "do not print the banner")
	_ = v.BindPFlag("results_dir", pf.Lookup("results-dir"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))

	f := rootCmd.Flags()
	f.StringVarP(&legacyTarget, "target", "t", "", "target IP/URL/domain")
	f.StringVarP(&legacyMode, "mode", "m", "", "scan mode: nmap, web, sqli, osint, vuln")
	f.StringVar(&legacyScanType, "scan-type", "basic", "nmap scan type: basic, stealth, aggressive, vuln, all_ports, udp, fast")
	f.StringVar(&legacyTool, "tool", "nikto", "web scanning tool: nikto, gobuster, dirb, ffuf")
	f.BoolVar(&legacyCheckTools, "check-tools", false, "check installed tools and exit")
	f.BoolVar(&legacyInteractive, "interactive", false, "run the interactive menu")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	conf = c
	if err := system.SetLevel(conf.Log.Level); err != nil {
		return err
	}
	if conf.File != "" {
		system.Logger.Debug("using config file", "path", conf.File)
	}
	closer, err := system.OpenAudit(conf.Log.File)
	if err != nil {
		return err
	}
	auditLog = closer
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if legacyCheckTools {
		return printTools(cmd.OutOrStdout(), "text")
	}
	if legacyInteractive || (legacyTarget == "" && legacyMode == "") {
		if !stdinIsTerminal() {
			return cmd.Help()
		}
		return runMenu(cmd.Context())
	}
	if legacyTarget == "" {
		return errors.New("target required for non-interactive mode (-t)")
	}
	if legacyMode == "" {
		return errors.New("scan mode required with --target (-m nmap|web|sqli|osint|vuln)")
	}

	mode := scans.Mode(legacyMode)
	arg := ""
	switch mode {
	case scans.ModeNmap:
		arg = legacyScanType
	case scans.ModeWeb:
		arg = legacyTool
	case scans.ModeSQLi, scans.ModeOSINT, scans.ModeVuln:
	default:
		return fmt.Errorf("invalid mode %q (choose from nmap, web, sqli, osint, vuln)", legacyMode)
	}
	a := app.New(conf, cmd.OutOrStdout())
	plan, err := a.Catalog.Build(mode, legacyTarget, arg)
	if err != nil {
		return err
	}
	printBanner(cmd.OutOrStdout())
	return a.RunPlan(cmd.Context(), plan)
}

// Execute runs the CLI.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
