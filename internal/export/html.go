// Package export renders a board document as a standalone HTML page. Card
// descriptions and the board description are markdown and go through
// goldmark; everything else is escaped by the template engine.
package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/plank/internal/board"
)

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #f5f5f5; }
.board { display: flex; gap: 1rem; align-items: flex-start; }
.column { background: #e8e8e8; border-radius: 6px; padding: 0.75rem; min-width: 16rem; }
.column h2 { font-size: 1rem; margin: 0 0 0.5rem; }
.wip { color: #666; font-weight: normal; }
.card { background: #fff; border-radius: 4px; padding: 0.5rem; margin-bottom: 0.5rem; box-shadow: 0 1px 2px rgba(0,0,0,0.15); }
.card.done .title { text-decoration: line-through; color: #888; }
.due { font-size: 0.8rem; color: #a33; }
.tags { font-size: 0.8rem; color: #36c; }
.archive { margin-top: 2rem; }
.archive h2 { font-size: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Description}}<div class="description">{{markdown .Description}}</div>{{end}}
<div class="board">
{{range .Columns}}
<div class="column">
<h2>{{.Title}}{{if .WIPLimit}} <span class="wip">{{len .Cards}}/{{deref .WIPLimit}}</span>{{end}}</h2>
{{range .Cards}}
<div class="card{{if .Checked}} done{{end}}">
<div class="title">{{if .Checked}}&#9745;{{else}}&#9744;{{end}} {{.Title}}</div>
{{if .Description}}<div class="body">{{markdown .Description}}</div>{{end}}
{{if .DueDate}}<div class="due">due {{.DueDate}}</div>{{end}}
{{if .Tags}}<div class="tags">{{range .Tags}}{{.}} {{end}}</div>{{end}}
</div>
{{end}}
</div>
{{end}}
</div>
{{if .Archive}}
<div class="archive">
<h2>Archive</h2>
{{range .Archive}}
<div class="card{{if .Checked}} done{{end}}">
<div class="title">{{if .Checked}}&#9745;{{else}}&#9744;{{end}} {{.Title}}</div>
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("board").Funcs(template.FuncMap{
	"markdown": markdownHTML,
	"deref":    func(p *int) int { return *p },
}).Parse(pageTemplate))

// HTML renders doc as a complete HTML page.
func HTML(doc *board.Document) (string, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render board page: %w", err)
	}
	return buf.String(), nil
}

// markdownHTML converts a markdown string to HTML using goldmark, falling
// back to escaped text if conversion fails.
func markdownHTML(input string) template.HTML {
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}
