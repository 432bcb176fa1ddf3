// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"html"
	"strings"

	"github.com/jeranaias/reqlog/internal/jsonfmt"
	"github.com/jeranaias/reqlog/internal/summary"
)

// =============================================================================
// HTML RENDERER
// =============================================================================

// HTMLRenderer renders a self-contained HTML5 document with embedded CSS.
// Headings are recorded as they are added and grouped into the table of
// contents by Finalize.
type HTMLRenderer struct {
	contents strings.Builder
	toc      []heading
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// AddHeading implements Renderer.
func (r *HTMLRenderer) AddHeading(title string) {
	r.toc = append(r.toc, heading{level: levelHeading, title: title})
	r.writeHeading("h2", title)
}

// AddSubHeading implements Renderer.
func (r *HTMLRenderer) AddSubHeading(title string) {
	r.toc = append(r.toc, heading{level: levelSubHeading, title: title})
	r.writeHeading("h3", title)
}

func (r *HTMLRenderer) writeHeading(tag, title string) {
	r.contents.WriteString("<" + tag + ` id="`)
	r.contents.WriteString(html.EscapeString(Anchor(title)))
	r.contents.WriteString(`">`)
	r.contents.WriteString(html.EscapeString(title))
	r.contents.WriteString("</" + tag + ">\n")
}

// AddData implements Renderer. JSON is colorized; text and placeholders are
// escaped but never colorized.
func (r *HTMLRenderer) AddData(data []byte) {
	p := classify(data)

	r.contents.WriteString("<pre><code>")
	switch p.kind {
	case payloadJSON:
		jsonfmt.Print(jsonfmt.NewHTMLSink(&r.contents), p.json)
	case payloadText:
		r.contents.WriteString(html.EscapeString(string(p.data)))
	default:
		r.contents.WriteString(html.EscapeString(p.placeholder()))
	}
	r.contents.WriteString("</code></pre>\n")
}

// AddKeyValueSection implements Renderer.
func (r *HTMLRenderer) AddKeyValueSection(section *summary.KeyValueSection, asSubHeading bool) {
	if section == nil {
		return
	}
	if asSubHeading {
		r.AddSubHeading(section.Title)
	} else {
		r.AddHeading(section.Title)
	}

	if section.IsEmpty() {
		r.contents.WriteString("<p>" + EmptySection + "</p>\n")
		return
	}

	r.contents.WriteString("<ul")
	if section.Color != "" {
		r.contents.WriteString(` class="kv-`)
		r.contents.WriteString(html.EscapeString(string(section.Color)))
		r.contents.WriteString(`"`)
	}
	r.contents.WriteString(">\n")
	for _, it := range section.Items {
		r.contents.WriteString("<li><strong>")
		r.contents.WriteString(html.EscapeString(it.Key))
		r.contents.WriteString("</strong>: ")
		r.contents.WriteString(html.EscapeString(itemValue(it)))
		r.contents.WriteString("</li>\n")
	}
	r.contents.WriteString("</ul>\n")
}

// Finalize implements Renderer.
func (r *HTMLRenderer) Finalize(title string) string {
	escapedTitle := html.EscapeString(title)
	toc := r.tableOfContents()

	var sb strings.Builder
	sb.Grow(len(stylesheet) + len(toc) + r.contents.Len() + 512)

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"utf-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	sb.WriteString("    <title>" + escapedTitle + "</title>\n")
	sb.WriteString(stylesheet)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("<main>\n")
	sb.WriteString("<h1>" + escapedTitle + "</h1>\n")
	sb.WriteString(toc)
	sb.WriteString(r.contents.String())
	sb.WriteString("</main>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String()
}

// tocRows groups headings into rows: each row starts at a heading and takes
// every sub-heading that follows it up to the next heading.
func tocRows(toc []heading) [][]heading {
	var rows [][]heading
	for i := 0; i < len(toc); {
		row := []heading{toc[i]}
		i++
		for i < len(toc) && toc[i].level == levelSubHeading {
			row = append(row, toc[i])
			i++
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *HTMLRenderer) tableOfContents() string {
	if len(r.toc) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("<nav>\n<ul class=\"toc\">\n")
	for _, row := range tocRows(r.toc) {
		head, tail := row[0], row[1:]
		sb.WriteString("<li><strong>")
		sb.WriteString(tocLink(head.title))
		sb.WriteString("</strong>")
		if len(tail) > 0 {
			links := make([]string, 0, len(tail))
			for _, h := range tail {
				links = append(links, tocLink(h.title))
			}
			sb.WriteString(": ")
			sb.WriteString(strings.Join(links, " · "))
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n</nav>\n")
	return sb.String()
}

func tocLink(title string) string {
	return `<a href="#` + html.EscapeString(Anchor(title)) + `">` + html.EscapeString(title) + "</a>"
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const stylesheet = `    <style>
        body {
            font: 400 16px/1.55 -apple-system, BlinkMacSystemFont, "Segoe UI", "Helvetica Neue", Helvetica, Arial, sans-serif;
            background-color: #FDFDFD;
            color: #353535;
            margin: 0;
        }

        main {
            max-width: 900px;
            padding: 15px;
        }

        h1 {
            font-weight: 700;
            font-size: 40px;
        }

        h2 {
            margin-top: 30px;
            padding-bottom: 8px;
            border-bottom: 2px solid #DDDDDD;
            font-weight: 600;
            font-size: 34px;
        }

        pre {
            font-family: "SF Mono", Menlo, Consolas, "Liberation Mono", Courier, monospace;
            font-size: 14px;
            padding: 8px;
            border-radius: 8px;
            background-color: #F2F2F2;
            overflow-x: auto;
        }

        ul {
            list-style: none;
            padding-left: 0;
        }

        li {
            overflow-wrap: break-word;
        }

        strong {
            font-weight: 600;
            color: #737373;
        }

        a {
            color: #0066FF;
        }

        ul.kv-red { border-left: 3px solid #FF3B30; padding-left: 8px; }
        ul.kv-orange { border-left: 3px solid #FF9500; padding-left: 8px; }
        ul.kv-green { border-left: 3px solid #34C759; padding-left: 8px; }
        ul.kv-blue { border-left: 3px solid #007AFF; padding-left: 8px; }
        ul.kv-purple { border-left: 3px solid #AF52DE; padding-left: 8px; }
        ul.kv-indigo { border-left: 3px solid #5856D6; padding-left: 8px; }
        ul.kv-gray { border-left: 3px solid #8E8E93; padding-left: 8px; }

        .s { color: rgb(255, 45, 85); }
        .o { color: rgb(0, 122, 255); }
        .n { color: rgb(191, 90, 242); }

        @media (prefers-color-scheme: dark) {
            body {
                background-color: #211F1E;
                color: #DFDFDF;
            }

            strong {
                color: #878787;
            }

            h2 {
                border-bottom: 2px solid #3C3A38;
            }

            pre {
                background-color: #2C2A28;
            }

            a {
                color: #67A6F8;
            }

            .s { color: rgb(255, 55, 95); }
            .o { color: rgb(10, 132, 255); }
            .n { color: rgb(175, 82, 222); }
        }
    </style>
`
