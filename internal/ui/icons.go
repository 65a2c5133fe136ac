package ui

import "os"

// nfEnabled reports whether Nerd Font icons should be rendered.
// Disable with NERDFONT=0 on terminals without a patched font.
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

func IconOK() string     { return nf("\uf058", "[+]") }   // fa-check_circle
func IconFail() string   { return nf("\uf057", "[x]") }   // fa-times_circle
func IconWarn() string   { return nf("\uf071", "[!]") }   // fa-warning
func IconInfo() string   { return nf("\uf05a", "[*]") }   // fa-info_circle
func IconRun() string    { return nf("\uf120", ">>") }    // fa-terminal
func IconFile() string   { return nf("\uf15b", "-") }     // fa-file
func IconSearch() string { return nf("\uf002", "/") }     // fa-search
func IconClock() string  { return nf("\uf017", "") }
func IconTarget() string { return nf("\U000f04fe", "@") } // md-target
func IconFolder() string { return nf("\uf07b", "dir") }

