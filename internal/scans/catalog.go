package scans

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"pentu/internal/config"
	"pentu/internal/tools"
)

// ScanType is one nmap profile.
type ScanType struct {
	Name    string
	Label   string
	Options string
}

// NmapScanTypes in menu order. The first entry is the fallback.
var NmapScanTypes = []ScanType{
	{Name: "basic", Label: "Basic Scan", Options: "-sS -sV -O"},
	{Name: "stealth", Label: "Stealth Scan", Options: "-sS -f -T2"},
	{Name: "aggressive", Label: "Aggressive Scan", Options: "-A -T4"},
	{Name: "vuln", Label: "Vulnerability Scripts", Options: "--script=vuln"},
	{Name: "all_ports", Label: "All Ports", Options: "-p-"},
	{Name: "udp", Label: "UDP Scan", Options: "-sU --top-ports=1000"},
	{Name: "fast", Label: "Fast Scan", Options: "-F -T5"},
}

// LookupScanType returns the named profile, or basic when name is unknown.
func LookupScanType(name string) ScanType {
	for _, st := range NmapScanTypes {
		if strings.EqualFold(st.Name, name) {
			return st
		}
	}
	return NmapScanTypes[0]
}

// WebTools in menu order.
var WebTools = []tools.ToolID{tools.ToolNikto, tools.ToolGobuster, tools.ToolDirb, tools.ToolFFuF}

// BruteServices are the hydra service names offered by the menu. Any other
// hydra service name is accepted too.
var BruteServices = []string{"ssh", "ftp", "telnet", "http-get"}

// Catalog builds plans using configured timeouts and wordlists.
type Catalog struct {
	DefaultTimeout time.Duration
	SQLiTimeout    time.Duration
	BruteTimeout   time.Duration
	Wordlists      config.Wordlists

	// Stat checks wordlist presence; os.Stat when nil.
	Stat func(string) (os.FileInfo, error)
}

// NewCatalog returns a catalog configured from c.
func NewCatalog(c config.Config) *Catalog {
	return &Catalog{
		DefaultTimeout: c.DefaultTimeout(),
		SQLiTimeout:    c.SQLiTimeout(),
		BruteTimeout:   c.BruteTimeout(),
		Wordlists:      c.Wordlists,
	}
}

func (c *Catalog) stat(p string) error {
	st := c.Stat
	if st == nil {
		st = os.Stat
	}
	if _, err := st(p); err != nil {
		return fmt.Errorf("%w: %s", ErrWordlistMissing, p)
	}
	return nil
}

// ValidateTarget rejects empty values, control characters and values that
// would be read as an option by the tool.
func ValidateTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	if strings.HasPrefix(t, "-") {
		return "", fmt.Errorf("%w: %q looks like an option", ErrInvalidTarget, t)
	}
	for _, r := range t {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains control characters", ErrInvalidTarget, t)
		}
	}
	return t, nil
}

func single(mode Mode, tool tools.ToolID, target, label, cmd string, timeout time.Duration) Plan {
	return Plan{
		Mode:   mode,
		Tool:   tool,
		Target: target,
		Steps: []Step{{
			Label:      label,
			Command:    cmd,
			Timeout:    timeout,
			Save:       true,
			SaveTool:   string(tool),
			SaveTarget: target,
		}},
	}
}

// Nmap builds a network scan. Unknown scan types fall back to basic.
func (c *Catalog) Nmap(target, scanType string) (Plan, error) {
	t, err := ValidateTarget(target)
	if err != nil {
		return Plan{}, err
	}
	st := LookupScanType(scanType)
	cmd, err := render(nmapTmpl, map[string]string{"Options": st.Options, "Target": t})
	if err != nil {
		return Plan{}, err
	}
	return single(ModeNmap, tools.ToolNmap, t, fmt.Sprintf("Nmap %s scan on %s", st.Name, t), cmd, c.DefaultTimeout), nil
}

// Web builds a web application scan with one of WebTools.
func (c *Catalog) Web(target string, tool tools.ToolID) (Plan, error) {
	t, err := ValidateTarget(target)
	if err != nil {
		return Plan{}, err
	}
	data := map[string]string{"Target": t, "Wordlist": c.Wordlists.Web}
	var cmd string
	switch tool {
	case tools.ToolNikto:
		cmd, err = render(niktoTmpl, data)
	case tools.ToolGobuster:
		cmd, err = render(gobusterTmpl, data)
	case tools.ToolDirb:
		cmd, err = render(dirbTmpl, data)
	case tools.ToolFFuF:
		cmd, err = render(ffufTmpl, data)
	default:
		return Plan{}, fmt.Errorf("%w: %q is not a web scanner", ErrUnknownTool, tool)
	}
	if err != nil {
		return Plan{}, err
	}
	return single(ModeWeb, tool, t, fmt.Sprintf("%s scan on %s", tool, t), cmd, c.DefaultTimeout), nil
}

// SQLi builds a sqlmap run against a URL with parameters.
func (c *Catalog) SQLi(target string) (Plan, error) {
	t, err := ValidateTarget(target)
	if err != nil {
		return Plan{}, err
	}
	cmd, err := render(sqlmapTmpl, map[string]string{"Target": t})
	if err != nil {
		return Plan{}, err
	}
	return single(ModeSQLi, tools.ToolSQLMap, t, "SQL injection test on "+t, cmd, c.SQLiTimeout), nil
}

// Brute builds a hydra run. Empty list paths use the configured defaults;
// both lists must exist.
func (c *Catalog) Brute(target, service, users, passwords string) (Plan, error) {
	t, err := ValidateTarget(target)
	if err != nil {
		return Plan{}, err
	}
	service = strings.TrimSpace(service)
	if service == "" {
		service = BruteServices[0]
	}
	if _, err := ValidateTarget(service); err != nil {
		return Plan{}, fmt.Errorf("service: %w", err)
	}
	if strings.TrimSpace(users) == "" {
		users = c.Wordlists.Users
	}
	if strings.TrimSpace(passwords) == "" {
		passwords = c.Wordlists.Passwords
	}
	if err := c.stat(users); err != nil {
		return Plan{}, fmt.Errorf("username list: %w", err)
	}
	if err := c.stat(passwords); err != nil {
		return Plan{}, fmt.Errorf("password list: %w", err)
	}
	cmd, err := render(hydraTmpl, map[string]string{"Users": users, "Passwords": passwords, "Target": t, "Service": service})
	if err != nil {
		return Plan{}, err
	}
	return single(ModeBrute, tools.ToolHydra, t, fmt.Sprintf("%s brute force on %s", service, t), cmd, c.BruteTimeout), nil
}

// Wireless builds the monitor-mode capture sequence. The stop step runs even
// when the capture fails.
func (c *Catalog) Wireless(iface string) (Plan, error) {
	if strings.TrimSpace(iface) == "" {
		iface = "wlan0"
	}
	i, err := ValidateTarget(iface)
	if err != nil {
		return Plan{}, err
	}
	data := map[string]string{"Iface": i}
	start, err := render(monStartTmpl, data)
	if err != nil {
		return Plan{}, err
	}
	dump, err := render(airodumpTmpl, data)
	if err != nil {
		return Plan{}, err
	}
	stop, err := render(monStopTmpl, data)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Mode:   ModeWireless,
		Tool:   tools.ToolAircrack,
		Target: i,
		Steps: []Step{
			{Label: "Setting interface to monitor mode", Command: start, Timeout: c.DefaultTimeout},
			{Label: "Scanning for wireless networks (30 seconds)", Command: dump, Timeout: c.DefaultTimeout, Save: true, SaveTool: "airodump", SaveTarget: i},
			{Label: "Stopping monitor mode", Command: stop, Timeout: c.DefaultTimeout},
		},
	}, nil
}

// OSINT builds a theHarvester run for a domain.
func (c *Catalog) OSINT(domain string) (Plan, error) {
	d, err := ValidateTarget(domain)
	if err != nil {
		return Plan{}, err
	}
	cmd, err := render(harvesterTmpl, map[string]string{"Target": d})
	if err != nil {
		return Plan{}, err
	}
	return single(ModeOSINT, tools.ToolTheHarvester, d, "OSINT gathering for "+d, cmd, c.DefaultTimeout), nil
}

// Vuln builds a nuclei run.
func (c *Catalog) Vuln(target string) (Plan, error) {
	t, err := ValidateTarget(target)
	if err != nil {
		return Plan{}, err
	}
	cmd, err := render(nucleiTmpl, map[string]string{"Target": t})
	if err != nil {
		return Plan{}, err
	}
	return single(ModeVuln, tools.ToolNuclei, t, "Vulnerability scan on "+t, cmd, c.DefaultTimeout), nil
}

// Build dispatches on mode for the flag-driven entry points. arg is the nmap
// scan type for ModeNmap and the tool for ModeWeb; other modes ignore it.
func (c *Catalog) Build(mode Mode, target, arg string) (Plan, error) {
	switch mode {
	case ModeNmap:
		return c.Nmap(target, arg)
	case ModeWeb:
		if arg == "" {
			arg = string(tools.ToolNikto)
		}
		return c.Web(target, tools.ToolID(strings.ToLower(arg)))
	case ModeSQLi:
		return c.SQLi(target)
	case ModeOSINT:
		return c.OSINT(target)
	case ModeVuln:
		return c.Vuln(target)
	default:
		return Plan{}, fmt.Errorf("unsupported scan mode %q", mode)
	}
}
