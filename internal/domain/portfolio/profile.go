package portfolio

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Sections controls which blocks of the portfolio are rendered.
// About, Skills and Contact are always on; use NewSections to build one.
type Sections struct {
	About    bool `json:"about" yaml:"about"`
	Skills   bool `json:"skills" yaml:"skills"`
	Projects bool `json:"projects" yaml:"projects"`
	Resume   bool `json:"resume" yaml:"resume"`
	Contact  bool `json:"contact" yaml:"contact"`
}

func NewSections(projects, resume bool) Sections {
	return Sections{
		About:    true,
		Skills:   true,
		Projects: projects,
		Resume:   resume,
		Contact:  true,
	}
}

// UserProfile is the immutable input of a render. It is rebuilt from the
// wizard state before every render and never stored on its own.
type UserProfile struct {
	FullName     string   `json:"full_name" yaml:"full_name" validate:"required"`
	JobTitle     string   `json:"job_title" yaml:"job_title" validate:"required"`
	Email        string   `json:"email" yaml:"email" validate:"required"`
	Phone        string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Website      string   `json:"website,omitempty" yaml:"website,omitempty"`
	Bio          string   `json:"bio" yaml:"bio" validate:"required"`
	Skills       []string `json:"skills" yaml:"skills" validate:"required,min=1"`
	ProfileImage string   `json:"profile_image,omitempty" yaml:"profile_image,omitempty"`
	Sections     Sections `json:"sections" yaml:"sections"`
}

var (
	ErrInvalidImage = errors.New("profile image must be a base64 image data URI")

	imageDataURIRegex = regexp.MustCompile(`^data:image/(png|jpeg|gif|webp|svg\+xml);base64,[A-Za-z0-9+/]+={0,2}$`)
	slugStripRegex    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRegex     = regexp.MustCompile(`-{2,}`)
	slugRegex         = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ParseSkills splits comma separated input into trimmed, non-empty skills.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	return skills
}

// Normalize trims every text field and drops blank skills.
func (p UserProfile) Normalize() UserProfile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.JobTitle = strings.TrimSpace(p.JobTitle)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.Website = strings.TrimSpace(p.Website)
	p.Bio = strings.TrimSpace(p.Bio)
	p.ProfileImage = strings.TrimSpace(p.ProfileImage)
	p.Skills = ParseSkills(strings.Join(p.Skills, ","))
	p.Sections.About, p.Sections.Skills, p.Sections.Contact = true, true, true
	return p
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func profileValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// MissingFields returns the json names of required fields that are blank,
// in declaration order. Whitespace-only values count as blank.
func (p UserProfile) MissingFields() []string {
	n := p.Normalize()
	err := profileValidator().Struct(n)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// HasValidImage reports whether ProfileImage is set and safe to embed.
func (p UserProfile) HasValidImage() bool {
	return IsImageDataURI(p.ProfileImage)
}

func IsImageDataURI(s string) bool {
	return imageDataURIRegex.MatchString(s)
}

// Slug turns a display name into a lowercase hostname label.
func Slug(name string) string {
	s := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if !slugRegex.MatchString(s) {
		return ""
	}
	return s
}
