package tools

import "strings"

var Tools = []ToolInfo{
	{ID: ToolNmap, DisplayName: "Nmap", Category: CategoryRecon, Binaries: []string{"nmap"}},
	{ID: ToolMasscan, DisplayName: "Masscan", Category: CategoryRecon, Binaries: []string{"masscan"}},
	{ID: ToolNuclei, DisplayName: "Nuclei", Category: CategoryRecon, Binaries: []string{"nuclei"}},
	{ID: ToolTheHarvester, DisplayName: "theHarvester", Category: CategoryRecon, Binaries: []string{"theharvester", "theHarvester"}},
	{ID: ToolEnum4linux, DisplayName: "enum4linux", Category: CategoryRecon, Binaries: []string{"enum4linux", "enum4linux-ng"}},
	{ID: ToolNikto, DisplayName: "Nikto", Category: CategoryWeb, Binaries: []string{"nikto"}},
	{ID: ToolGobuster, DisplayName: "Gobuster", Category: CategoryWeb, Binaries: []string{"gobuster"}},
	{ID: ToolDirb, DisplayName: "Dirb", Category: CategoryWeb, Binaries: []string{"dirb"}},
	{ID: ToolFFuF, DisplayName: "FFuF", Category: CategoryWeb, Binaries: []string{"ffuf"}},
	{ID: ToolWPScan, DisplayName: "WPScan", Category: CategoryWeb, Binaries: []string{"wpscan"}},
	{ID: ToolSQLMap, DisplayName: "sqlmap", Category: CategoryExploitation, Binaries: []string{"sqlmap"}},
	{ID: ToolMetasploit, DisplayName: "Metasploit", Category: CategoryExploitation, Binaries: []string{"msfconsole", "metasploit"}},
	{ID: ToolHydra, DisplayName: "Hydra", Category: CategoryPassword, Binaries: []string{"hydra"}},
	{ID: ToolJohn, DisplayName: "John the Ripper", Category: CategoryPassword, Binaries: []string{"john"}},
	{ID: ToolAircrack, DisplayName: "Aircrack-ng", Category: CategoryWireless, Binaries: []string{"aircrack-ng"}},
}

// Lookup finds a catalog entry by ID or binary name, case-insensitively.
func Lookup(name string) (ToolInfo, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Tools {
		if strings.EqualFold(string(t.ID), name) {
			return t, true
		}
		for _, b := range t.Binaries {
			if strings.EqualFold(b, name) {
				return t, true
			}
		}
	}
	return ToolInfo{}, false
}
