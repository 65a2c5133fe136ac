package scans

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/alessio/shellescape"
)

var funcs = template.FuncMap{
	"q": shellescape.Quote,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text))
}

var (
	nmapTmpl      = mustTemplate("nmap", `nmap {{.Options}} {{q .Target}}`)
	niktoTmpl     = mustTemplate("nikto", `nikto -h {{q .Target}} -Format txt`)
	gobusterTmpl  = mustTemplate("gobuster", `gobuster dir -u {{q .Target}} -w {{q .Wordlist}} -x php,html,txt,js`)
	dirbTmpl      = mustTemplate("dirb", `dirb {{q .Target}}`)
	ffufTmpl      = mustTemplate("ffuf", `ffuf -w {{q .Wordlist}} -u {{q (printf "%s/FUZZ" .Target)}} -fc 404`)
	sqlmapTmpl    = mustTemplate("sqlmap", `sqlmap -u {{q .Target}} --batch --level=3 --risk=2`)
	hydraTmpl     = mustTemplate("hydra", `hydra -L {{q .Users}} -P {{q .Passwords}} -t 4 {{q .Target}} {{q .Service}}`)
	monStartTmpl  = mustTemplate("airmon-start", `sudo airmon-ng start {{q .Iface}}`)
	airodumpTmpl  = mustTemplate("airodump", `timeout 30s airodump-ng {{q (printf "%smon" .Iface)}}`)
	monStopTmpl   = mustTemplate("airmon-stop", `sudo airmon-ng stop {{q (printf "%smon" .Iface)}}`)
	harvesterTmpl = mustTemplate("theharvester", `theharvester -d {{q .Target}} -b google,bing,linkedin,twitter,yahoo -l 500`)
	nucleiTmpl    = mustTemplate("nuclei", `nuclei -u {{q .Target}} -severity critical,high,medium`)
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s command: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
