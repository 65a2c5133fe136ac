package tools

// Tool identifiers and metadata
type ToolID string

const (
	ToolNmap         ToolID = "nmap"
	ToolMetasploit   ToolID = "metasploit"
	ToolSQLMap       ToolID = "sqlmap"
	ToolNikto        ToolID = "nikto"
	ToolGobuster     ToolID = "gobuster"
	ToolDirb         ToolID = "dirb"
	ToolFFuF         ToolID = "ffuf"
	ToolJohn         ToolID = "john"
	ToolAircrack     ToolID = "aircrack-ng"
	ToolTheHarvester ToolID = "theharvester"
	ToolEnum4linux   ToolID = "enum4linux"
	ToolMasscan      ToolID = "masscan"
	ToolHydra        ToolID = "hydra"
	ToolWPScan       ToolID = "wpscan"
	ToolNuclei       ToolID = "nuclei"
)

// Category groups tools the way the menu presents them.
type Category string

const (
	CategoryRecon        Category = "recon"
	CategoryWeb          Category = "web"
	CategoryExploitation Category = "exploitation"
	CategoryPassword     Category = "password"
	CategoryWireless     Category = "wireless"
)

type ToolInfo struct {
	ID          ToolID
	DisplayName string
	Category    Category
	Binaries    []string // candidate binary names in PATH, first match wins
}

// ToolEntry is the outcome of probing one tool.
type ToolEntry struct {
	Name      string `json:"name" yaml:"name"`
	Installed bool   `json:"installed" yaml:"installed"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
}
