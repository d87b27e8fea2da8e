package markdown

import (
	"html"
	"strings"
)

const pageStyle = `body{font-family:Georgia,serif;max-width:46rem;margin:3rem auto;padding:0 1.5rem;line-height:1.6;color:#1f2328}
h1,h2,h3{font-weight:500;letter-spacing:.02em}
h2{border-bottom:1px solid #e5e5e5;padding-bottom:.3rem}
blockquote{border-left:3px solid #9b59b6;margin:0;padding-left:1rem;color:#57606a;font-style:italic}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #d0d7de;padding:.4rem .6rem;text-align:left}
pre{background:#f6f8fa;padding:1rem;overflow-x:auto}
code{font-family:Menlo,monospace;font-size:.9em}
li.bullet{list-style:disc;margin-left:1.5rem}
li.ordered{list-style:decimal;margin-left:1.5rem}`

// Document wraps a fragment produced by ToHTML in a standalone page.
func Document(title, fragment string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>\n" + pageStyle + "\n</style>\n</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
