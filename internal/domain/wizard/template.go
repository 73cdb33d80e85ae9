package wizard

import "strings"

type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Premium     bool   `json:"premium"`
}

var catalog = []Template{
	{ID: "developer", Name: "Developer", Description: "Clean layout focused on skills and projects."},
	{ID: "designer", Name: "Designer", Description: "Image-forward layout with a bold header."},
	{ID: "creative", Name: "Creative", Description: "Animated sections and custom typography.", Premium: true},
	{ID: "executive", Name: "Executive", Description: "Resume-first layout for senior roles.", Premium: true},
}

func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

func LookupTemplate(id string) (Template, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
