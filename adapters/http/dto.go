package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
)

// Session DTOs
type SessionDTO struct {
	ID              uuid.UUID             `json:"id"`
	Step            int                   `json:"step"`
	Template        string                `json:"template"`
	Theme           string                `json:"theme"`
	Details         wizard.Details        `json:"details"`
	ProfileImage    string                `json:"profile_image,omitempty"`
	IncludeProjects bool                  `json:"include_projects"`
	IncludeResume   bool                  `json:"include_resume"`
	Projects        []portfolio.Project   `json:"projects"`
	Deployment      wizard.Deployment     `json:"deployment"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Notification    *service.Notification `json:"notification,omitempty"`
}

func ToSessionDTO(s *wizard.Session, n *service.Notification) SessionDTO {
	projects := s.Projects
	if projects == nil {
		projects = []portfolio.Project{}
	}
	return SessionDTO{
		ID:              s.ID,
		Step:            int(s.Step),
		Template:        s.Template,
		Theme:           string(s.Theme),
		Details:         s.Details,
		ProfileImage:    s.ProfileImage,
		IncludeProjects: s.IncludeProjects,
		IncludeResume:   s.IncludeResume,
		Projects:        projects,
		Deployment:      s.Deployment,
		UpdatedAt:       s.UpdatedAt,
		Notification:    n,
	}
}

type SelectTemplateRequest struct {
	Template string `json:"template" binding:"required"`
}

type UpdateDetailsRequest struct {
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Bio      string `json:"bio"`
	// Skills is the raw comma separated input.
	Skills string `json:"skills"`
}

func (r UpdateDetailsRequest) ToDomain() wizard.Details {
	return wizard.Details{
		FullName: r.FullName,
		JobTitle: r.JobTitle,
		Email:    r.Email,
		Phone:    r.Phone,
		Location: r.Location,
		Website:  r.Website,
		Bio:      r.Bio,
		Skills:   portfolio.ParseSkills(r.Skills),
	}
}

type CustomizeRequest struct {
	Theme           string              `json:"theme"`
	IncludeProjects *bool               `json:"include_projects"`
	IncludeResume   bool                `json:"include_resume"`
	Projects        []portfolio.Project `json:"projects"`
}

type GoToStepRequest struct {
	Step int `json:"step" binding:"required"`
}

// Render DTOs
type RenderRequest struct {
	Profile  portfolio.UserProfile `json:"profile"`
	Projects []portfolio.Project   `json:"projects"`
	Theme    string                `json:"theme"`
}

// Deploy DTOs
type DeployStatusDTO struct {
	State        wizard.DeployState    `json:"state"`
	URL          string                `json:"url,omitempty"`
	Error        string                `json:"error,omitempty"`
	RequestedAt  *time.Time            `json:"requested_at,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	Notification *service.Notification `json:"notification,omitempty"`
}

func ToDeployStatusDTO(d wizard.Deployment, n *service.Notification) DeployStatusDTO {
	state := d.State
	if state == wizard.DeployNone {
		state = "none"
	}
	return DeployStatusDTO{
		State:        state,
		URL:          d.URL,
		Error:        d.Error,
		RequestedAt:  d.RequestedAt,
		CompletedAt:  d.CompletedAt,
		Notification: n,
	}
}

// Theme DTOs
type ThemeDTO struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type ColorSchemeRequest struct {
	ColorScheme string `json:"color_scheme" binding:"required"`
}
