// Package infocard renders particle information cards as plain text.
package infocard

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/particle"
)

// Renderer builds cards for particle types from a catalog.
type Renderer struct {
	resolver *decomp.Resolver
	template *template.Template
}

// Card holds everything a card template can show.
type Card struct {
	Type       particle.Type
	Info       particle.Info
	Category   catalog.Category
	Recipe     string // "1 Down Quark, 2 Up Quark"; empty for elementary types
	UsedIn     []string
	Elementary string // full decomposition summary
	Tree       string
	Composite  bool
}

// New creates a renderer using the default template.
func New(res *decomp.Resolver) *Renderer {
	return &Renderer{
		resolver: res,
		template: template.Must(template.New("card").Parse(DefaultTemplate)),
	}
}

// SetTemplate replaces the card template.
func (r *Renderer) SetTemplate(tmpl string) error {
	t, err := template.New("card").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	r.template = t
	return nil
}

// Build resolves the card data for t. stored is the composition recorded on
// an instance, if any; it takes precedence over the catalog in the tree.
func (r *Renderer) Build(t particle.Type, stored []decomp.Component) Card {
	info, _ := particle.Lookup(t)
	card := Card{Type: t, Info: info}

	cat := r.resolver.Catalog()
	if recipe, ok := cat.FindByOutputType(t); ok {
		card.Category = recipe.Category
		card.Recipe = recipe.Ingredients.String()
		card.Composite = true
	}
	for _, recipe := range cat.Recipes() {
		if recipe.Ingredients[t] > 0 {
			card.UsedIn = append(card.UsedIn, particle.Name(recipe.Type))
		}
	}

	parts, ok := r.resolver.DecomposeOneLevel(t, stored)
	if !ok {
		return card
	}
	card.Composite = true
	card.Tree = decomp.Tree(t, expandTree(r.resolver, parts))
	card.Elementary = decomp.Summary(r.resolver.DecomposeComponentsFully(t, stored))
	return card
}

// Render builds and formats the card for t.
func (r *Renderer) Render(t particle.Type, stored []decomp.Component) (string, error) {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, r.Build(t, stored)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// expandTree fills in catalog structure below components that carry no
// stored composition of their own.
func expandTree(res *decomp.Resolver, parts []decomp.Component) []decomp.Component {
	out := make([]decomp.Component, len(parts))
	for i, p := range parts {
		out[i] = p
		if sub, ok := res.DecomposeOneLevel(p.Type, p.Composition); ok {
			out[i].Composition = expandTree(res, sub)
		}
	}
	return out
}

// DefaultTemplate is the multi-line card used by `plab lookup`.
const DefaultTemplate = `{{ .Info.Name }} ({{ .Info.Symbol }})
Family:  {{ .Info.Family }}
{{- if .Info.AtomicNumber }}
Z:       {{ .Info.AtomicNumber }}{{ end }}
{{- if .Info.Mass }}
Mass:    {{ .Info.Mass }}{{ end }}
{{- if .Info.Charge }}
Charge:  {{ .Info.Charge }}{{ end }}
{{- if .Info.Spin }}
Spin:    {{ .Info.Spin }}{{ end }}
{{- if .Info.Description }}

{{ .Info.Description }}{{ end }}
{{- if .Recipe }}

Recipe ({{ .Category }}): {{ .Recipe }}{{ end }}
{{- if .UsedIn }}
Used in: {{ range $i, $n := .UsedIn }}{{ if $i }}, {{ end }}{{ $n }}{{ end }}{{ end }}
{{- if .Tree }}

{{ .Tree }}

Elementary: {{ .Elementary }}{{ end }}`

// CompactTemplate is the one-line card shown in the canvas status bar.
const CompactTemplate = `{{ .Info.Name }} [{{ .Info.Symbol }}]
{{- if .Info.Charge }} q={{ .Info.Charge }}{{ end }}
{{- if .Recipe }} = {{ .Recipe }}{{ end }}`
