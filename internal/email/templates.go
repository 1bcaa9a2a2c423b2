package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	TemplateBlast           = "blast"
	TemplateReminder        = "reminder"
	TemplateTakeoutDecision = "takeout_decision"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is the set of placeholders available to every template.
type Data struct {
	Name         string
	SurveyTitle  string
	SurveyLink   string
	EndDate      string
	QuestionText string
	Decision     string
	Reason       string
}

type Templates struct {
	set *template.Template
}

func LoadTemplates() (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("email.LoadTemplates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes one of the built-in templates by name.
func (t *Templates) Render(name string, data Data) (string, error) {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("email.Render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderInline executes a body supplied by the user, falling back to the named template when body is empty.
func (t *Templates) RenderInline(body, fallback string, data Data) (string, error) {
	if body == "" {
		return t.Render(fallback, data)
	}

	tpl, err := template.New("inline").Option("missingkey=zero").Parse(body)
	if err != nil {
		return "", fmt.Errorf("email.RenderInline: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email.RenderInline: %w", err)
	}
	return buf.String(), nil
}
