package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/devicelab-dev/webrun/pkg/core"
)

func renderHTML(rec *core.RunRecord) (string, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"fmtDuration": fmtDuration,
		"fmtTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rec); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fmtDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} - webrun report</title>
<style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #1d2d35; }
    .header { background: #22303c; color: #fff; padding: 20px 32px; }
    .header h1 { margin: 0 0 4px; font-size: 20px; }
    .header .meta { color: #9fb0bd; font-size: 13px; }
    .summary { display: flex; gap: 16px; padding: 20px 32px; }
    .stat { background: #fff; border-radius: 6px; padding: 12px 20px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
    .stat .num { font-size: 22px; font-weight: 600; }
    .stat .label { font-size: 12px; color: #7a8a96; text-transform: uppercase; }
    .stat.passed .num { color: #2e844a; }
    .stat.failed .num { color: #c23934; }
    .stat.skipped .num { color: #b58c00; }
    .statements { padding: 0 32px 32px; }
    .stmt { background: #fff; border-left: 4px solid #ccc; border-radius: 4px; margin-bottom: 8px; padding: 10px 16px; box-shadow: 0 1px 2px rgba(0,0,0,.06); }
    .stmt.passed { border-left-color: #2e844a; }
    .stmt.failed { border-left-color: #c23934; }
    .stmt.skipped { border-left-color: #b58c00; opacity: .7; }
    .stmt .text { font-family: "SF Mono", Consolas, monospace; font-size: 13px; }
    .stmt .line { color: #7a8a96; font-size: 12px; margin-right: 12px; }
    .stmt .error { color: #c23934; font-size: 13px; margin-top: 6px; }
    .stmt img { max-width: 480px; display: block; margin-top: 8px; border: 1px solid #d8dde3; border-radius: 4px; }
    .exited { margin: 0 32px 24px; padding: 10px 16px; background: #fdefee; color: #c23934; border-radius: 4px; font-size: 13px; }
</style>
</head>
<body>
<div class="header">
    <h1>{{.Name}}</h1>
    <div class="meta">{{.ScriptPath}} &middot; {{.Browser}} &middot; {{fmtTime .StartTime}} &middot; {{fmtDuration .Duration}}</div>
</div>
<div class="summary">
    <div class="stat passed"><div class="num">{{.Passed}}</div><div class="label">Passed</div></div>
    <div class="stat failed"><div class="num">{{.Failed}}</div><div class="label">Failed</div></div>
    <div class="stat skipped"><div class="num">{{.Skipped}}</div><div class="label">Skipped</div></div>
</div>
{{if .ExitedEarly}}<div class="exited">The run stopped before the end of the script.</div>{{end}}
<div class="statements">
{{range .Statements}}
    <div class="stmt {{.Status}}">
        <span class="line">L{{.Line}}</span><span class="text">{{.Text}}</span>
        {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
        {{range .Screenshots}}<img src="{{.Path}}" alt="screenshot">{{end}}
    </div>
{{end}}
</div>
</body>
</html>
`
