// Package render turns a shopping list into the documents handed to users:
// a Markdown checklist and a printable HTML page built from it.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mealcart"
	"mealcart/shopping"
)

const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// ArtifactName returns the file name for a list generated at t, e.g. shopping_list_20251019_101500.html.
func ArtifactName(t time.Time, ext string) string {
	return fmt.Sprintf("shopping_list_%s.%s", t.Format("20060102_150405"), ext)
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// Markdown renders the list as a checklist. Each entry names the recipes it came from.
func Markdown(l *shopping.List, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Shopping List\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n", generatedAt.Format("2006-01-02 15:04"))

	if len(l.Recipes) > 0 {
		b.WriteString("\n## Recipes\n\n")
		for _, r := range l.Recipes {
			name := r.Name
			if name == "" {
				name = r.ID
			}
			fmt.Fprintf(&b, "- %s (%s)\n", mdEscaper.Replace(name), mdEscaper.Replace(r.ID))
		}
	}

	for _, s := range l.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", mdEscaper.Replace(s.Category.Name))
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "- [ ] %s", mdEscaper.Replace(e.Text()))
			if len(e.RecipeIDs) > 0 {
				names := make([]string, len(e.RecipeIDs))
				for i, id := range e.RecipeIDs {
					names[i] = mdEscaper.Replace(l.RecipeName(id))
				}
				fmt.Fprintf(&b, " _for: %s_", strings.Join(names, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(l.Sections) == 0 {
		b.WriteString("\nNothing to buy.\n")
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.TaskList))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
ul { list-style: none; padding-left: 0; }
li { margin: 0.25em 0; }
em { color: #666; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// HTML converts the Markdown checklist into a standalone printable page.
func HTML(l *shopping.List, generatedAt time.Time) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(l, generatedAt)), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title   string
		Content template.HTML
	}{
		Title:   "Shopping List " + generatedAt.Format("2006-01-02"),
		Content: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// Artifacts renders the plain text and HTML documents for a list generated at t.
func Artifacts(l *shopping.List, t time.Time) ([]mealcart.Artifact, error) {
	html, err := HTML(l, t)
	if err != nil {
		return nil, err
	}
	return []mealcart.Artifact{
		{Name: ArtifactName(t, "txt"), ContentType: ContentTypeText, Data: []byte(shopping.RenderAsText(l))},
		{Name: ArtifactName(t, "html"), ContentType: ContentTypeHTML, Data: html},
	}, nil
}
