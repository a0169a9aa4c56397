package email

import (
	"strings"
	"testing"
)

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", name, err)
		}

		for key, value := range data {
			if !strings.Contains(html, value) {
				t.Errorf("Render(%s): value of %s (%q) missing from output", name, key, value)
			}
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	html, err := Render(TemplateEmployeeCreated, map[string]string{
		"EmployeeID":   "7",
		"EmployeeName": "<script>alert(1)</script>",
		"EmployeeRole": "QA",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("template output must escape HTML in values")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render(Template("missing"), nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestValueOrDash(t *testing.T) {
	name := "Bob"
	empty := ""

	if got := valueOrDash(&name); got != "Bob" {
		t.Errorf("valueOrDash(Bob) = %q", got)
	}
	if got := valueOrDash(&empty); got != "-" {
		t.Errorf("valueOrDash(\"\") = %q", got)
	}
	if got := valueOrDash(nil); got != "-" {
		t.Errorf("valueOrDash(nil) = %q", got)
	}
}
