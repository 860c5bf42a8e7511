// Package templates holds the HTML components of the report server.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const styles = `body{font-family:system-ui,sans-serif;margin:0;background:#f8fafc;color:#0f172a}
header{background:#1e293b;color:#f8fafc;padding:1rem 2rem}
main{padding:1rem 2rem;max-width:72rem}
section{background:#fff;border:1px solid #e2e8f0;border-radius:.5rem;padding:1rem;margin-bottom:1rem}
table{border-collapse:collapse;font-size:.875rem}
th,td{border-bottom:1px solid #e2e8f0;padding:.25rem .75rem;text-align:left}
td.num{text-align:right;font-variant-numeric:tabular-nums}
img{max-width:100%;height:auto}
.charts{display:grid;grid-template-columns:repeat(auto-fill,minmax(28rem,1fr));gap:1rem}
.holds{color:#15803d;font-weight:600}
.fails{color:#b91c1c;font-weight:600}
.muted{color:#64748b;font-size:.875rem}`

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) textf(format string, args ...any) {
	h.text(fmt.Sprintf(format, args...))
}

// element writes <tag>text</tag>.
func (h *htmlWriter) element(tag, text string) {
	h.raw("<" + tag + ">")
	h.text(text)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) row(cells []string, numeric func(i int) bool) {
	h.raw("<tr>")
	for i, c := range cells {
		if numeric != nil && numeric(i) {
			h.raw(`<td class="num">`)
		} else {
			h.raw("<td>")
		}
		h.text(c)
		h.raw("</td>")
	}
	h.raw("</tr>")
}

func (h *htmlWriter) header(cells ...string) {
	h.raw("<thead><tr>")
	for _, c := range cells {
		h.element("th", c)
	}
	h.raw("</tr></thead>")
}

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", title)
		h.raw("<style>" + styles + "</style></head><body><header>")
		h.element("h1", title)
		h.raw("</header><main>")
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main></body></html>")
		return h.err
	})
}

// ErrorPage renders a full page for a failed request.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("Data Science Salaries", ErrorAlert(message, action, code))
}

// ErrorAlert renders the error box used inside pages.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section role="alert">`)
		h.raw(`<p class="fails">`)
		h.text(message)
		h.raw("</p>")
		if action != "" {
			h.element("p", action)
		}
		h.raw(`<p class="muted">Error code: `)
		h.text(code)
		h.raw("</p></section>")
		return h.err
	})
}
