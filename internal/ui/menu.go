package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"pentu/internal/results"
	"pentu/internal/scans"
	"pentu/internal/tools"
)

type MenuChoice string

const (
	ChoiceNmap     MenuChoice = "nmap"
	ChoiceWeb      MenuChoice = "web"
	ChoiceVuln     MenuChoice = "vuln"
	ChoiceOSINT    MenuChoice = "osint"
	ChoiceSQLi     MenuChoice = "sqli"
	ChoiceBrute    MenuChoice = "brute"
	ChoiceWireless MenuChoice = "wireless"
	ChoiceTools    MenuChoice = "tools"
	ChoiceResults  MenuChoice = "results"
	ChoiceBrowse   MenuChoice = "browse"
	ChoiceCustom   MenuChoice = "custom"
	ChoiceExit     MenuChoice = "exit"
)

// menuEntries in display order, grouped by section.
var menuEntries = []struct {
	section string
	label   string
	choice  MenuChoice
}{
	{"Recon", "Network Scan (Nmap)", ChoiceNmap},
	{"Recon", "Web Application Scan", ChoiceWeb},
	{"Recon", "Vulnerability Scan (Nuclei)", ChoiceVuln},
	{"Recon", "OSINT Gathering", ChoiceOSINT},
	{"Exploit", "SQL Injection Test", ChoiceSQLi},
	{"Exploit", "Password Attacks", ChoiceBrute},
	{"Exploit", "Wireless Attacks", ChoiceWireless},
	{"Utils", "Check Tool Status", ChoiceTools},
	{"Utils", "View Results", ChoiceResults},
	{"Utils", "Browse Results", ChoiceBrowse},
	{"Utils", "Custom Command", ChoiceCustom},
	{"", "Exit", ChoiceExit},
}

// formTheme tweaks the Charm theme toward the Vitesse accents.
func formTheme() *huh.Theme {
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Foreground(Vitesse.Primary).Bold(true)
	theme.Focused.SelectSelector = theme.Focused.SelectSelector.Foreground(Vitesse.Red)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(Vitesse.Primary)
	theme.Focused.Base = theme.Focused.Base.BorderForeground(Vitesse.Primary)
	return theme
}

func run(groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithTheme(formTheme()).WithWidth(64).Run()
}

func validTarget(s string) error {
	_, err := scans.ValidateTarget(s)
	return err
}

// MainMenu asks for the next action. huh.ErrUserAborted is returned on
// Ctrl+C.
func MainMenu() (MenuChoice, error) {
	opts := make([]huh.Option[MenuChoice], 0, len(menuEntries))
	for _, e := range menuEntries {
		label := e.label
		if e.section != "" {
			label = fmt.Sprintf("%-8s %s", e.section, e.label)
		}
		opts = append(opts, huh.NewOption(label, e.choice))
	}
	choice := ChoiceNmap
	err := run(huh.NewGroup(
		huh.NewSelect[MenuChoice]().
			Title("PENTU CLI - Main Menu").
			Options(opts...).
			Height(len(opts) + 2).
			Value(&choice),
	))
	return choice, err
}

// NmapForm asks for a target and one of scans.NmapScanTypes.
func NmapForm() (target, scanType string, err error) {
	opts := make([]huh.Option[string], 0, len(scans.NmapScanTypes))
	for _, st := range scans.NmapScanTypes {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", st.Label, st.Options), st.Name))
	}
	scanType = scans.NmapScanTypes[0].Name
	err = run(huh.NewGroup(
		huh.NewInput().Title("Target IP/range").Value(&target).Validate(validTarget),
		huh.NewSelect[string]().Title("Scan type").Options(opts...).Value(&scanType),
	))
	return target, scanType, err
}

var webToolLabels = map[tools.ToolID]string{
	tools.ToolNikto:    "Nikto (Vulnerability Scanner)",
	tools.ToolGobuster: "Gobuster (Directory Bruteforce)",
	tools.ToolDirb:     "Dirb (Web Content Scanner)",
	tools.ToolFFuF:     "FFuF (Fast Web Fuzzer)",
}

func WebForm() (target string, tool tools.ToolID, err error) {
	opts := make([]huh.Option[tools.ToolID], 0, len(scans.WebTools))
	for _, id := range scans.WebTools {
		opts = append(opts, huh.NewOption(webToolLabels[id], id))
	}
	tool = scans.WebTools[0]
	err = run(huh.NewGroup(
		huh.NewInput().Title("Target URL").Value(&target).Validate(validTarget),
		huh.NewSelect[tools.ToolID]().Title("Tool").Options(opts...).Value(&tool),
	))
	return target, tool, err
}

// PromptTarget asks for a single target value.
func PromptTarget(title string) (string, error) {
	var target string
	err := run(huh.NewGroup(huh.NewInput().Title(title).Value(&target).Validate(validTarget)))
	return target, err
}

type BruteInput struct {
	Target    string
	Service   string
	Users     string
	Passwords string
}

// BruteForm asks for the hydra parameters. Empty wordlists mean defaults.
func BruteForm() (BruteInput, error) {
	var in BruteInput
	svc := scans.BruteServices[0]
	opts := []huh.Option[string]{
		huh.NewOption("SSH", "ssh"),
		huh.NewOption("FTP", "ftp"),
		huh.NewOption("Telnet", "telnet"),
		huh.NewOption("HTTP Basic Auth", "http-get"),
		huh.NewOption("Custom Service", ""),
	}
	err := run(
		huh.NewGroup(
			huh.NewInput().Title("Target IP").Value(&in.Target).Validate(validTarget),
			huh.NewSelect[string]().Title("Service").Options(opts...).Value(&svc),
		),
		huh.NewGroup(
			huh.NewInput().Title("Custom service").Value(&in.Service).Validate(validTarget),
		).WithHideFunc(func() bool { return svc != "" }),
		huh.NewGroup(
			huh.NewInput().Title("Username list").Placeholder("Enter for default").Value(&in.Users),
			huh.NewInput().Title("Password list").Placeholder("Enter for default").Value(&in.Passwords),
		),
	)
	if svc != "" {
		in.Service = svc
	}
	return in, err
}

// WirelessForm asks for the interface and a root-privileges confirmation.
func WirelessForm() (iface string, ok bool, err error) {
	err = run(huh.NewGroup(
		huh.NewInput().Title("Wireless interface").Placeholder("wlan0").Value(&iface),
		huh.NewConfirm().Title("This requires root privileges. Continue?").Value(&ok),
	))
	if strings.TrimSpace(iface) == "" {
		iface = "wlan0"
	}
	return iface, ok, err
}

// PickReport lists reports and returns the chosen one; ok is false when the
// user picks cancel.
func PickReport(reports []results.ReportFile) (rf results.ReportFile, ok bool, err error) {
	opts := make([]huh.Option[int], 0, len(reports)+1)
	for i, r := range reports {
		opts = append(opts, huh.NewOption(r.Name, i))
	}
	opts = append(opts, huh.NewOption("Cancel", -1))
	idx := 0
	height := len(opts) + 2
	if height > 18 {
		height = 18
	}
	err = run(huh.NewGroup(
		huh.NewSelect[int]().
			Title(fmt.Sprintf("Found %d result files", len(reports))).
			Options(opts...).
			Height(height).
			Value(&idx),
	))
	if err != nil || idx < 0 || idx >= len(reports) {
		return results.ReportFile{}, false, err
	}
	return reports[idx], true, nil
}

// CommandForm asks for a free-form command line.
func CommandForm() (string, error) {
	var cmd string
	err := run(huh.NewGroup(
		huh.NewNote().Title("Custom Command Mode").Description("Use with caution!"),
		huh.NewInput().Title("Command").Value(&cmd).Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("command is required")
			}
			return nil
		}),
	))
	return cmd, err
}

func Confirm(title string) (bool, error) {
	var ok bool
	err := run(huh.NewGroup(huh.NewConfirm().Title(title).Value(&ok)))
	return ok, err
}

// Pause waits for Enter on r.
func Pause(w io.Writer, r io.Reader) {
	fmt.Fprint(w, "\n"+Fg(Vitesse.Cyan).Render("Press Enter to continue..."))
	_, _ = bufio.NewReader(r).ReadString('\n')
}
