package portfolio

import "strings"

type Project struct {
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc" yaml:"desc"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// IsEmpty reports whether the project has neither a name nor a description.
func (p Project) IsEmpty() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Desc) == ""
}

// CompactProjects drops empty entries and keeps the order of the rest.
func CompactProjects(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.IsEmpty() {
			continue
		}
		out = append(out, Project{
			Name: strings.TrimSpace(p.Name),
			Desc: strings.TrimSpace(p.Desc),
			URL:  strings.TrimSpace(p.URL),
		})
	}
	return out
}
