package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"eventdeck/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer renders emails from the embedded templates directory.
// Each logical template is a trio of files: <name>_subject.txt, <name>.html,
// and <name>.txt. Templates are parsed once at construction.
type templateRenderer struct {
	html *template.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded email templates. A malformed
// embedded template is a programming error, so parse failures panic.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt")),
	}
}

// Render executes the named template (e.g. "welcome") with data and returns
// the subject line plus html and plain-text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.execText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	textBody, err = r.execText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}

	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	return strings.TrimSpace(subject), buf.String(), textBody, nil
}

func (r *templateRenderer) execText(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
