package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
)

const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func sampleProfile() portfolio.UserProfile {
	return portfolio.UserProfile{
		FullName: "Jane Doe",
		JobTitle: "Backend Engineer",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		Location: "Lisbon",
		Website:  "https://jane.dev",
		Bio:      "I build distributed systems.",
		Skills:   []string{"Go", "Rust", "C++"},
		Sections: portfolio.NewSections(true, false),
	}
}

func sampleProjects() []portfolio.Project {
	return []portfolio.Project{
		{Name: "Gateway", Desc: "API gateway", URL: "https://example.com/gateway"},
		{Name: "Notes", Desc: "Note taking app"},
	}
}

func renderBoth(t *testing.T, p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) map[Variant]string {
	t.Helper()
	out := make(map[Variant]string, 2)
	for _, v := range []Variant{VariantPreview, VariantDocument} {
		html, err := Render(v, p, projects, theme)
		require.NoError(t, err, "variant %s", v)
		out[v] = html
	}
	return out
}

func TestRender_IsDeterministic(t *testing.T) {
	for _, theme := range portfolio.Themes() {
		for _, v := range []Variant{VariantPreview, VariantDocument} {
			first, err := Render(v, sampleProfile(), sampleProjects(), theme)
			require.NoError(t, err)
			second, err := Render(v, sampleProfile(), sampleProjects(), theme)
			require.NoError(t, err)
			assert.Equal(t, first, second, "theme %s variant %s", theme, v)
		}
	}
}

func TestRender_ConcurrentCallsAgree(t *testing.T) {
	want, err := Document(sampleProfile(), sampleProjects(), portfolio.ThemePurple)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Document(sampleProfile(), sampleProjects(), portfolio.ThemePurple)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRender_ProjectsSectionVisibility(t *testing.T) {
	t.Run("emitted when enabled and non-empty", func(t *testing.T) {
		for v, html := range renderBoth(t, sampleProfile(), sampleProjects(), portfolio.ThemeBlue) {
			assert.Contains(t, html, ">Projects</h2>", "variant %s", v)
			assert.Equal(t, 2, strings.Count(html, `class="project-card"`), "variant %s", v)
		}
	})

	t.Run("absent when every project is empty", func(t *testing.T) {
		empty := []portfolio.Project{{}, {Name: "  ", Desc: ""}, {URL: "https://example.com"}}
		for v, html := range renderBoth(t, sampleProfile(), empty, portfolio.ThemeBlue) {
			assert.NotContains(t, html, ">Projects</h2>", "variant %s", v)
			assert.NotContains(t, html, "View Project", "variant %s", v)
		}
	})

	t.Run("absent when the section is disabled", func(t *testing.T) {
		p := sampleProfile()
		p.Sections = portfolio.NewSections(false, true)
		for v, html := range renderBoth(t, p, sampleProjects(), portfolio.ThemeBlue) {
			assert.NotContains(t, html, ">Projects</h2>", "variant %s", v)
			assert.NotContains(t, html, "Gateway", "variant %s", v)
		}
	})

	t.Run("absent when the list is nil", func(t *testing.T) {
		for v, html := range renderBoth(t, sampleProfile(), nil, portfolio.ThemeBlue) {
			assert.NotContains(t, html, ">Projects</h2>", "variant %s", v)
		}
	})
}

func TestRender_ViewProjectLink(t *testing.T) {
	for v, html := range renderBoth(t, sampleProfile(), sampleProjects(), portfolio.ThemeOrange) {
		assert.Equal(t, 1, strings.Count(html, "View Project"), "variant %s", v)
		assert.Equal(t, 1, strings.Count(html, `href="https://example.com/gateway"`), "variant %s", v)
	}

	noURL := []portfolio.Project{{Name: "Notes", Desc: "Note taking app"}}
	for v, html := range renderBoth(t, sampleProfile(), noURL, portfolio.ThemeOrange) {
		assert.Zero(t, strings.Count(html, "View Project"), "variant %s", v)
	}
}

func TestRender_SkillTagsKeepOrder(t *testing.T) {
	for v, html := range renderBoth(t, sampleProfile(), nil, portfolio.ThemeBlue) {
		require.Equal(t, 3, strings.Count(html, `class="skill-tag"`), "variant %s", v)

		goIdx := strings.Index(html, ">Go</span>")
		rustIdx := strings.Index(html, ">Rust</span>")
		cppIdx := strings.Index(html, ">C&#43;&#43;</span>")
		require.NotEqual(t, -1, goIdx, "variant %s", v)
		require.NotEqual(t, -1, rustIdx, "variant %s", v)
		require.NotEqual(t, -1, cppIdx, "variant %s", v)
		assert.Less(t, goIdx, rustIdx)
		assert.Less(t, rustIdx, cppIdx)
	}
}

func TestRender_BlankSkillsAreSkipped(t *testing.T) {
	p := sampleProfile()
	p.Skills = []string{"Go", " ", ""}
	html, err := Preview(p, nil, portfolio.ThemeBlue)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(html, `class="skill-tag"`))
}

func TestRender_UsesOnlySelectedPalette(t *testing.T) {
	for _, selected := range portfolio.Themes() {
		want, err := portfolio.ResolveTheme(selected)
		require.NoError(t, err)

		for v, html := range renderBoth(t, sampleProfile(), sampleProjects(), selected) {
			assert.Contains(t, html, want.Primary, "theme %s variant %s", selected, v)
			assert.Contains(t, html, want.Secondary, "theme %s variant %s", selected, v)

			for _, other := range portfolio.Themes() {
				if other == selected {
					continue
				}
				p, _ := portfolio.ResolveTheme(other)
				assert.NotContains(t, html, p.Primary, "theme %s variant %s leaks %s", selected, v, other)
				assert.NotContains(t, html, p.Secondary, "theme %s variant %s leaks %s", selected, v, other)
			}
		}
	}
}

func TestRender_GreenTheme(t *testing.T) {
	html, err := Preview(sampleProfile(), sampleProjects(), portfolio.ThemeGreen)
	require.NoError(t, err)

	assert.Contains(t, html, "linear-gradient(135deg, #10b981, #059669)")
	assert.Contains(t, html, "background: #10b981;")
	assert.Contains(t, html, "border-left: 4px solid #10b981;")
	assert.NotContains(t, html, "#3b82f6")
}

func TestRender_InvalidTheme(t *testing.T) {
	_, err := Preview(sampleProfile(), nil, portfolio.Theme("teal"))
	assert.ErrorIs(t, err, portfolio.ErrInvalidTheme)

	_, err = Document(sampleProfile(), nil, "")
	assert.ErrorIs(t, err, portfolio.ErrInvalidTheme)
}

func TestRender_InvalidVariant(t *testing.T) {
	_, err := Render("zip", sampleProfile(), nil, portfolio.ThemeBlue)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestRender_EscapesUserInput(t *testing.T) {
	p := sampleProfile()
	p.FullName = `<script>alert("x")</script>`
	p.Bio = `<img src=x onerror=alert(1)>`
	p.Website = "javascript:alert(1)"
	projects := []portfolio.Project{{Name: "<b>bold</b>", Desc: "d", URL: "javascript:alert(2)"}}

	for v, html := range renderBoth(t, p, projects, portfolio.ThemeBlue) {
		assert.NotContains(t, html, "<script>", "variant %s", v)
		assert.NotContains(t, html, "<img src=x", "variant %s", v)
		assert.NotContains(t, html, "<b>bold</b>", "variant %s", v)
		assert.NotContains(t, html, "javascript:", "variant %s", v)
		assert.Contains(t, html, "&lt;script&gt;", "variant %s", v)
		assert.Contains(t, html, "#ZgotmplZ", "variant %s", v)
	}
}

func TestRender_ProfileImage(t *testing.T) {
	p := sampleProfile()
	p.ProfileImage = tinyPNG
	for v, html := range renderBoth(t, p, nil, portfolio.ThemeBlue) {
		assert.Contains(t, html, `<img src="data:image/png;base64,iVBORw0KGgo`, "variant %s", v)
	}

	p.ProfileImage = "javascript:alert(1)"
	for v, html := range renderBoth(t, p, nil, portfolio.ThemeBlue) {
		assert.NotContains(t, html, "<img", "variant %s", v)
	}
}

func TestRender_OptionalContactLinks(t *testing.T) {
	p := sampleProfile()
	p.Phone, p.Website, p.Location = "", "", ""

	for v, html := range renderBoth(t, p, nil, portfolio.ThemeBlue) {
		assert.Contains(t, html, `href="mailto:jane@example.com"`, "variant %s", v)
		assert.NotContains(t, html, "tel:", "variant %s", v)
		assert.NotContains(t, html, "Website</a>", "variant %s", v)
		assert.NotContains(t, html, "Lisbon", "variant %s", v)
	}

	for v, html := range renderBoth(t, sampleProfile(), nil, portfolio.ThemeBlue) {
		assert.Contains(t, html, `href="tel:555-0100"`, "variant %s", v)
		assert.Contains(t, html, `href="https://jane.dev"`, "variant %s", v)
	}
}

func TestDocument_IsStandalone(t *testing.T) {
	html, err := Document(sampleProfile(), nil, portfolio.ThemeBlue)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Jane Doe - Portfolio</title>")
	assert.Contains(t, html, "<style>")
	assert.Contains(t, html, "</html>")
}

func TestPreview_IsFragment(t *testing.T) {
	html, err := Preview(sampleProfile(), nil, portfolio.ThemeBlue)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div class="portfolio-preview"`))
	assert.NotContains(t, html, "<html")
	assert.NotContains(t, html, "<style>")
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Document ")
	require.NoError(t, err)
	assert.Equal(t, VariantDocument, v)

	v, err = ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantPreview, v)

	_, err = ParseVariant("pdf")
	assert.ErrorIs(t, err, ErrInvalidVariant)
}
