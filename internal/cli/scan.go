package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"pentu/internal/app"
	"pentu/internal/scans"
	"pentu/internal/tools"
)

var (
	nmapType      string
	webTool       string
	bruteService  string
	bruteUsers    string
	brutePassword string
	wirelessYes   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan non-interactively",
}

func init() {
	rootCmd.AddCommand(scanCmd)

	nmapCmd := targetCmd("nmap TARGET", "Network scan with nmap", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.Nmap(target, nmapType)
	})
	nmapCmd.Flags().StringVar(&nmapType, "type", "basic", "scan type: basic, stealth, aggressive, vuln, all_ports, udp, fast")

	webCmd := targetCmd("web URL", "Web application scan", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.Web(target, tools.ToolID(webTool))
	})
	webCmd.Flags().StringVar(&webTool, "tool", string(tools.ToolNikto), "tool: nikto, gobuster, dirb, ffuf")

	sqliCmd := targetCmd("sqli URL", "SQL injection test with sqlmap", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.SQLi(target)
	})

	bruteCmd := targetCmd("brute TARGET", "Password attack with hydra", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.Brute(target, bruteService, bruteUsers, brutePassword)
	})
	bruteCmd.Flags().StringVar(&bruteService, "service", "ssh", "hydra service: ssh, ftp, telnet, http-get, ...")
	bruteCmd.Flags().StringVar(&bruteUsers, "users", "", "username list (default from config)")
	bruteCmd.Flags().StringVar(&brutePassword, "passwords", "", "password list (default from config)")

	osintCmd := targetCmd("osint DOMAIN", "OSINT gathering with theHarvester", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.OSINT(target)
	})

	vulnCmd := targetCmd("vuln TARGET", "Vulnerability scan with nuclei", func(c *scans.Catalog, target string) (scans.Plan, error) {
		return c.Vuln(target)
	})

	wirelessCmd := &cobra.Command{
		Use:   "wireless [IFACE]",
		Short: "Monitor mode capture with airmon-ng and airodump-ng (needs root)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iface := "wlan0"
			if len(args) == 1 {
				iface = args[0]
			}
			if !wirelessYes {
				if !stdinIsTerminal() {
					return errors.New("wireless mode changes the interface state; pass --yes to confirm")
				}
				if !askYesNo(cmd.OutOrStdout(), cmd.InOrStdin(), "This requires root privileges. Continue?") {
					return nil
				}
			}
			a := app.New(conf, cmd.OutOrStdout())
			plan, err := a.Catalog.Wireless(iface)
			if err != nil {
				return err
			}
			printBanner(cmd.OutOrStdout())
			return a.RunPlan(cmd.Context(), plan)
		},
	}
	wirelessCmd.Flags().BoolVarP(&wirelessYes, "yes", "y", false, "skip the confirmation prompt")

	scanCmd.AddCommand(nmapCmd, webCmd, sqliCmd, bruteCmd, osintCmd, vulnCmd, wirelessCmd)
}

// targetCmd builds a subcommand taking exactly one target.
func targetCmd(use, short string, build func(*scans.Catalog, string) (scans.Plan, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.New(conf, cmd.OutOrStdout())
			plan, err := build(a.Catalog, args[0])
			if err != nil {
				return err
			}
			printBanner(cmd.OutOrStdout())
			return a.RunPlan(cmd.Context(), plan)
		},
	}
}
