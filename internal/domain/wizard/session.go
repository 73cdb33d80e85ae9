package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
)

type Step int

const (
	StepTemplate  Step = 1
	StepDetails   Step = 2
	StepCustomize Step = 3
	StepPublish   Step = 4
)

func (s Step) Valid() bool {
	return s >= StepTemplate && s <= StepPublish
}

type DeployState string

const (
	DeployNone    DeployState = ""
	DeployPending DeployState = "pending"
	DeployReady   DeployState = "ready"
	DeployFailed  DeployState = "failed"
)

type Deployment struct {
	State       DeployState `json:"state"`
	URL         string      `json:"url,omitempty"`
	Error       string      `json:"error,omitempty"`
	RequestedAt *time.Time  `json:"requested_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Details mirrors the step 2 form.
type Details struct {
	FullName string   `json:"full_name"`
	JobTitle string   `json:"job_title"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Website  string   `json:"website"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

type Session struct {
	ID              uuid.UUID           `json:"id"`
	Step            Step                `json:"step"`
	Template        string              `json:"template"`
	Theme           portfolio.Theme     `json:"theme"`
	Details         Details             `json:"details"`
	ProfileImage    string              `json:"profile_image,omitempty"`
	IncludeProjects bool                `json:"include_projects"`
	IncludeResume   bool                `json:"include_resume"`
	Projects        []portfolio.Project `json:"projects"`
	Deployment      Deployment          `json:"deployment"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

var (
	ErrSessionNotFound  = errors.New("wizard session not found")
	ErrInvalidStep      = errors.New("step must be between 1 and 4")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrPremiumTemplate  = errors.New("template requires premium")
	ErrTemplateRequired = errors.New("select a free template first")
)

// MissingFieldsError lists required details that are still blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Please fill in all required fields: %s", strings.Join(e.Fields, ", "))
}

func NewSession(now time.Time) *Session {
	return &Session{
		ID:              uuid.New(),
		Step:            StepTemplate,
		Theme:           portfolio.DefaultTheme,
		IncludeProjects: true,
		Projects:        []portfolio.Project{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SelectTemplate records the choice. Premium templates are recorded too but
// leave the wizard locked on step 1.
func (s *Session) SelectTemplate(id string, now time.Time) error {
	tpl, ok := LookupTemplate(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	s.Template = tpl.ID
	s.UpdatedAt = now
	if tpl.Premium {
		return fmt.Errorf("%w: %s", ErrPremiumTemplate, tpl.Name)
	}
	return nil
}

func (s *Session) HasFreeTemplate() bool {
	tpl, ok := LookupTemplate(s.Template)
	return ok && !tpl.Premium
}

func (s *Session) UpdateDetails(d Details, now time.Time) {
	d.FullName = strings.TrimSpace(d.FullName)
	d.JobTitle = strings.TrimSpace(d.JobTitle)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Location = strings.TrimSpace(d.Location)
	d.Website = strings.TrimSpace(d.Website)
	d.Bio = strings.TrimSpace(d.Bio)
	d.Skills = portfolio.ParseSkills(strings.Join(d.Skills, ","))
	s.Details = d
	s.UpdatedAt = now
}

func (s *Session) SetProfileImage(dataURI string, now time.Time) error {
	if !portfolio.IsImageDataURI(dataURI) {
		return portfolio.ErrInvalidImage
	}
	s.ProfileImage = dataURI
	s.UpdatedAt = now
	return nil
}

func (s *Session) Customize(theme portfolio.Theme, includeProjects, includeResume bool, projects []portfolio.Project, now time.Time) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", portfolio.ErrInvalidTheme, string(theme))
	}
	s.Theme = theme
	s.IncludeProjects = includeProjects
	s.IncludeResume = includeResume
	s.Projects = portfolio.CompactProjects(projects)
	s.UpdatedAt = now
	return nil
}

// Validate checks the required details, the same check GoToStep runs before step 3.
func (s *Session) Validate() error {
	if missing := s.Profile().MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

func (s *Session) GoToStep(step Step, now time.Time) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	if step >= StepDetails && !s.HasFreeTemplate() {
		return ErrTemplateRequired
	}
	if step >= StepCustomize {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	s.Step = step
	s.UpdatedAt = now
	return nil
}

// Profile rebuilds the render input from the current form state.
func (s *Session) Profile() portfolio.UserProfile {
	skills := make([]string, len(s.Details.Skills))
	copy(skills, s.Details.Skills)
	return portfolio.UserProfile{
		FullName:     s.Details.FullName,
		JobTitle:     s.Details.JobTitle,
		Email:        s.Details.Email,
		Phone:        s.Details.Phone,
		Location:     s.Details.Location,
		Website:      s.Details.Website,
		Bio:          s.Details.Bio,
		Skills:       skills,
		ProfileImage: s.ProfileImage,
		Sections:     portfolio.NewSections(s.IncludeProjects, s.IncludeResume),
	}
}

func (s *Session) ProjectList() []portfolio.Project {
	return portfolio.CompactProjects(s.Projects)
}

func (s *Session) MarkDeployPending(now time.Time) {
	s.Deployment = Deployment{State: DeployPending, RequestedAt: &now}
	s.UpdatedAt = now
}

func (s *Session) MarkDeployed(url string, now time.Time) {
	s.Deployment.State = DeployReady
	s.Deployment.URL = url
	s.Deployment.Error = ""
	s.Deployment.CompletedAt = &now
	s.UpdatedAt = now
}

func (s *Session) MarkDeployFailed(err error, now time.Time) {
	s.Deployment.State = DeployFailed
	s.Deployment.URL = ""
	s.Deployment.Error = err.Error()
	s.Deployment.CompletedAt = &now
	s.UpdatedAt = now
}

// InProgress reports a pending deployment requested less than staleAfter ago.
// Older pending deployments are treated as lost and may be requested again.
func (d Deployment) InProgress(now time.Time, staleAfter time.Duration) bool {
	if d.State != DeployPending || d.RequestedAt == nil {
		return false
	}
	return now.Sub(*d.RequestedAt) < staleAfter
}

// Awaits reports whether the deployment is still waiting for the job
// requested at requestedAt.
func (d Deployment) Awaits(requestedAt time.Time) bool {
	return d.State == DeployPending && d.RequestedAt != nil && d.RequestedAt.Equal(requestedAt)
}

type Repository interface {
	Save(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	// Update applies fn to the current stored session and saves the result
	// atomically. Nothing is written when fn returns an error.
	Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
