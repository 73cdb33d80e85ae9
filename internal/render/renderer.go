// Package render turns a portfolio profile into HTML.
//
// Both variants go through html/template, so every user supplied value is
// escaped for the context it lands in: text, attribute, URL or CSS. Project
// and website links with unsafe schemes are replaced by "#ZgotmplZ", and a
// profile image is only embedded when it is a base64 image data URI.
//
// The functions keep no state and are safe for concurrent use.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
)

type Variant string

const (
	VariantPreview  Variant = "preview"
	VariantDocument Variant = "document"
)

var ErrInvalidVariant = errors.New("unknown render variant")

var (
	previewTmpl  = template.Must(template.New("preview").Parse(previewTemplate))
	documentTmpl = template.Must(template.New("document").Parse(documentTemplate))
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantPreview, VariantDocument:
		return v, nil
	case "":
		return VariantPreview, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVariant, s)
}

type view struct {
	Profile      portfolio.UserProfile
	Palette      portfolio.Palette
	Image        template.URL
	Skills       []string
	Projects     []portfolio.Project
	ShowProjects bool
}

func newView(p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (view, error) {
	palette, err := portfolio.ResolveTheme(theme)
	if err != nil {
		return view{}, err
	}

	v := view{
		Profile:  p,
		Palette:  palette,
		Projects: portfolio.CompactProjects(projects),
	}
	if p.HasValidImage() {
		// HasValidImage already matched the base64 image data URI pattern.
		v.Image = template.URL(p.ProfileImage)
	}
	for _, s := range p.Skills {
		if strings.TrimSpace(s) != "" {
			v.Skills = append(v.Skills, s)
		}
	}
	v.ShowProjects = p.Sections.Projects && len(v.Projects) > 0
	return v, nil
}

// Preview renders the inline-styled fragment used for the live preview.
func Preview(p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (string, error) {
	return execute(previewTmpl, p, projects, theme)
}

// Document renders a complete standalone HTML document with an embedded stylesheet.
func Document(p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (string, error) {
	return execute(documentTmpl, p, projects, theme)
}

// Render dispatches on variant.
func Render(variant Variant, p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (string, error) {
	switch variant {
	case VariantPreview:
		return Preview(p, projects, theme)
	case VariantDocument:
		return Document(p, projects, theme)
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVariant, string(variant))
}

func execute(t *template.Template, p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (string, error) {
	v, err := newView(p, projects, theme)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
