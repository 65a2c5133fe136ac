package scans

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pentu/internal/config"
	"pentu/internal/testutil"
	"pentu/internal/tools"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	return &Catalog{
		DefaultTimeout: 300 * time.Second,
		SQLiTimeout:    600 * time.Second,
		BruteTimeout:   1800 * time.Second,
		Wordlists: config.Wordlists{
			Web:       "/usr/share/wordlists/dirb/common.txt",
			Users:     testutil.WriteFile(t, dir, "users.txt", "root\n"),
			Passwords: testutil.WriteFile(t, dir, "pass.txt", "toor\n"),
		},
	}
}

func onlyCommand(t *testing.T, p Plan) string {
	t.Helper()
	if len(p.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(p.Steps))
	}
	return p.Steps[0].Command
}

func TestNmap_ScanTypes(t *testing.T) {
	c := testCatalog(t)
	tests := map[string]string{
		"basic":      "nmap -sS -sV -O 10.0.0.1",
		"stealth":    "nmap -sS -f -T2 10.0.0.1",
		"aggressive": "nmap -A -T4 10.0.0.1",
		"vuln":       "nmap --script=vuln 10.0.0.1",
		"all_ports":  "nmap -p- 10.0.0.1",
		"udp":        "nmap -sU --top-ports=1000 10.0.0.1",
		"fast":       "nmap -F -T5 10.0.0.1",
		"bogus":      "nmap -sS -sV -O 10.0.0.1",
	}
	for st, want := range tests {
		p, err := c.Nmap("10.0.0.1", st)
		if err != nil {
			t.Fatalf("Nmap(%s): %v", st, err)
		}
		if got := onlyCommand(t, p); got != want {
			t.Errorf("Nmap(%s) = %q, want %q", st, got, want)
		}
	}
}

func TestNmap_StepMetadata(t *testing.T) {
	p, err := testCatalog(t).Nmap("10.0.0.0/24", "fast")
	if err != nil {
		t.Fatal(err)
	}
	s := p.Steps[0]
	if p.Tool != tools.ToolNmap || p.Mode != ModeNmap || !s.Save || s.SaveTool != "nmap" || s.SaveTarget != "10.0.0.0/24" {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if s.Timeout != 300*time.Second {
		t.Fatalf("unexpected timeout %v", s.Timeout)
	}
}

func TestWeb(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		tool tools.ToolID
		want string
	}{
		{tools.ToolNikto, "nikto -h https://example.com -Format txt"},
		{tools.ToolGobuster, "gobuster dir -u https://example.com -w /usr/share/wordlists/dirb/common.txt -x php,html,txt,js"},
		{tools.ToolDirb, "dirb https://example.com"},
		{tools.ToolFFuF, "ffuf -w /usr/share/wordlists/dirb/common.txt -u https://example.com/FUZZ -fc 404"},
	}
	for _, tt := range tests {
		p, err := c.Web("https://example.com", tt.tool)
		if err != nil {
			t.Fatalf("Web(%s): %v", tt.tool, err)
		}
		if got := onlyCommand(t, p); got != tt.want {
			t.Errorf("Web(%s) = %q, want %q", tt.tool, got, tt.want)
		}
		if p.Tool != tt.tool {
			t.Errorf("plan tool = %s, want %s", p.Tool, tt.tool)
		}
	}
	if _, err := c.Web("https://example.com", tools.ToolHydra); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestSQLi_QuotesTargetAndUsesLongTimeout(t *testing.T) {
	p, err := testCatalog(t).SQLi("http://t.test/item.php?id=1&x=2")
	if err != nil {
		t.Fatal(err)
	}
	want := "sqlmap -u 'http://t.test/item.php?id=1&x=2' --batch --level=3 --risk=2"
	if got := onlyCommand(t, p); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if p.Steps[0].Timeout != 600*time.Second {
		t.Fatalf("unexpected timeout %v", p.Steps[0].Timeout)
	}
}

func TestTargetsAreQuoted(t *testing.T) {
	p, err := testCatalog(t).Vuln("x; rm -rf ~")
	if err != nil {
		t.Fatal(err)
	}
	want := "nuclei -u 'x; rm -rf ~' -severity critical,high,medium"
	if got := onlyCommand(t, p); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidateTarget(t *testing.T) {
	for _, bad := range []string{"", "   ", "-oN /etc/passwd", "a\nb", "a\x00b"} {
		if _, err := ValidateTarget(bad); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("ValidateTarget(%q) = %v, want ErrInvalidTarget", bad, err)
		}
	}
	got, err := ValidateTarget("  10.0.0.1 ")
	if err != nil || got != "10.0.0.1" {
		t.Fatalf("expected trimmed target, got %q %v", got, err)
	}
}

func TestBrute(t *testing.T) {
	c := testCatalog(t)
	p, err := c.Brute("10.0.0.9", "", "", "")
	if err != nil {
		t.Fatalf("Brute: %v", err)
	}
	cmd := onlyCommand(t, p)
	if !strings.HasPrefix(cmd, "hydra -L "+c.Wordlists.Users+" -P "+c.Wordlists.Passwords+" -t 4 10.0.0.9 ssh") {
		t.Fatalf("unexpected command %q", cmd)
	}
	if p.Steps[0].Timeout != 1800*time.Second || p.Tool != tools.ToolHydra {
		t.Fatalf("unexpected plan %+v", p)
	}

	p, err = c.Brute("10.0.0.9", "ftp", "", "")
	if err != nil || !strings.HasSuffix(onlyCommand(t, p), "10.0.0.9 ftp") {
		t.Fatalf("service not applied: %+v %v", p, err)
	}
}

func TestBrute_MissingWordlist(t *testing.T) {
	c := testCatalog(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")
	if _, err := c.Brute("10.0.0.9", "ssh", missing, ""); !errors.Is(err, ErrWordlistMissing) {
		t.Fatalf("expected ErrWordlistMissing for users, got %v", err)
	}
	if _, err := c.Brute("10.0.0.9", "ssh", "", missing); !errors.Is(err, ErrWordlistMissing) {
		t.Fatalf("expected ErrWordlistMissing for passwords, got %v", err)
	}
}

func TestBrute_StatOverride(t *testing.T) {
	c := testCatalog(t)
	c.Stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	if _, err := c.Brute("10.0.0.9", "ssh", "", ""); !errors.Is(err, ErrWordlistMissing) {
		t.Fatalf("expected ErrWordlistMissing, got %v", err)
	}
}

func TestWireless(t *testing.T) {
	p, err := testCatalog(t).Wireless("")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(p.Steps))
	}
	want := []string{
		"sudo airmon-ng start wlan0",
		"timeout 30s airodump-ng wlan0mon",
		"sudo airmon-ng stop wlan0mon",
	}
	for i, w := range want {
		if p.Steps[i].Command != w {
			t.Errorf("step %d = %q, want %q", i, p.Steps[i].Command, w)
		}
	}
	if !p.Steps[1].Save || p.Steps[1].SaveTool != "airodump" || p.Steps[0].Save || p.Steps[2].Save {
		t.Fatalf("only the capture step should be saved: %+v", p.Steps)
	}
}

func TestOSINT(t *testing.T) {
	p, err := testCatalog(t).OSINT("example.org")
	if err != nil {
		t.Fatal(err)
	}
	want := "theharvester -d example.org -b google,bing,linkedin,twitter,yahoo -l 500"
	if got := onlyCommand(t, p); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestBuild(t *testing.T) {
	c := testCatalog(t)
	p, err := c.Build(ModeWeb, "https://x.test", "")
	if err != nil || p.Tool != tools.ToolNikto {
		t.Fatalf("web default should be nikto: %+v %v", p, err)
	}
	p, err = c.Build(ModeNmap, "10.0.0.1", "udp")
	if err != nil || onlyCommand(t, p) != "nmap -sU --top-ports=1000 10.0.0.1" {
		t.Fatalf("unexpected nmap plan: %+v %v", p, err)
	}
	if _, err := c.Build(ModeBrute, "10.0.0.1", ""); err == nil {
		t.Fatalf("brute is not a flag mode")
	}
}

func TestNewCatalog(t *testing.T) {
	c := NewCatalog(config.Config{
		Timeouts:  config.Timeouts{Default: 10, SQLi: 20, Brute: 30},
		Wordlists: config.Wordlists{Web: "w"},
	})
	if c.DefaultTimeout != 10*time.Second || c.SQLiTimeout != 20*time.Second || c.BruteTimeout != 30*time.Second || c.Wordlists.Web != "w" {
		t.Fatalf("unexpected catalog %+v", c)
	}
}
