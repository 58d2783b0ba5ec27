package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
)

type templateData struct {
	Info        Info
	Descriptors []EventDescriptor
}

// renderTemplate loads the HTML template from disk and executes it. Both the
// load and the execution can fail; the caller falls back to the generated
// table in either case.
func renderTemplate(path string, info Info, descriptors []EventDescriptor) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	tmpl, err := template.New("events").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Info: info, Descriptors: descriptors}); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// renderFallbackTable builds a minimal HTML table from the descriptor list.
// It cannot fail.
func renderFallbackTable(info Info, descriptors []EventDescriptor) []byte {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html><head><title>")
	buf.WriteString(template.HTMLEscapeString(info.Title))
	buf.WriteString("</title></head><body>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n<p>%s (v%s)</p>\n",
		template.HTMLEscapeString(info.Title),
		template.HTMLEscapeString(info.Description),
		template.HTMLEscapeString(info.Version),
	)

	buf.WriteString("<table border=\"1\">\n<tr><th>Event</th><th>Direction</th><th>Auth</th><th>Description</th></tr>\n")
	for _, d := range descriptors {
		auth := "no"
		if d.RequiresAuth {
			auth = "yes"
		}
		fmt.Fprintf(&buf, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			template.HTMLEscapeString(d.EventName),
			template.HTMLEscapeString(string(d.Direction)),
			auth,
			template.HTMLEscapeString(d.Description),
		)
	}
	buf.WriteString("</table>\n</body></html>\n")

	return buf.Bytes()
}
