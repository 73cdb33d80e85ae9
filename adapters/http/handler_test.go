package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-generator/adapters/deploy"
	"github.com/khoahotran/portfolio-generator/adapters/event"
	"github.com/khoahotran/portfolio-generator/adapters/persistence"
	deployUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/deploy"
	prefUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/preference"
	wizardUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/wizard"
	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

const checkoutURL = "https://www.paypal.com/paypalme/test"

type HandlerTestSuite struct {
	suite.Suite
	Router *gin.Engine
	queue  *event.InProcessDeployQueue
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	var cfg config.Config
	cfg.Deploy.BaseDomain = "example.app"

	sessions := persistence.NewMemorySessionRepo(time.Hour)
	wizardUseCase := wizardUC.NewWizardUseCase(sessions, 1<<20, log)
	deployUseCase := deployUC.NewDeployUseCase(sessions, nil, deploy.NewSimulatedDeployer(cfg, log), time.Second, log)
	s.queue = event.NewInProcessDeployQueue(deployUseCase.ExecuteProcess, 1, 8, log)
	deployUseCase.SetQueue(s.queue)
	prefUseCase := prefUC.NewPreferenceUseCase(persistence.NewMemoryPreferenceRepo(), log)

	s.Router = NewRouter(Handlers{
		Wizard:     NewWizardHandler(wizardUseCase, deployUseCase, log),
		Render:     NewRenderHandler(wizardUseCase, log),
		Preference: NewPreferenceHandler(prefUseCase, log),
		Premium:    NewPremiumHandler(checkoutURL),
	}, "portfolio-test", log)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.NoError(s.queue.Close())
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *HandlerTestSuite) decode(rr *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func (s *HandlerTestSuite) createSession() string {
	rr := s.do(http.MethodPost, "/api/sessions", nil)
	s.Require().Equal(http.StatusCreated, rr.Code)
	var dto SessionDTO
	s.decode(rr, &dto)
	return dto.ID.String()
}

func (s *HandlerTestSuite) Test_Health_Themes_Templates() {
	rr := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/themes", nil)
	s.Equal(http.StatusOK, rr.Code)
	var themes struct {
		Data    []ThemeDTO `json:"data"`
		Default string     `json:"default"`
	}
	s.decode(rr, &themes)
	s.Len(themes.Data, 4)
	s.Equal("blue", themes.Default)
	s.Equal(ThemeDTO{Name: "blue", Primary: "#3b82f6", Secondary: "#1d4ed8"}, themes.Data[0])

	rr = s.do(http.MethodGet, "/api/templates", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `"id":"executive"`)
}

func (s *HandlerTestSuite) Test_Wizard_FullFlow() {
	id := s.createSession()
	base := "/api/sessions/" + id

	rr := s.do(http.MethodPut, base+"/template", gin.H{"template": "creative"})
	s.Equal(http.StatusPaymentRequired, rr.Code)

	rr = s.do(http.MethodPost, base+"/step", gin.H{"step": 2})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPut, base+"/template", gin.H{"template": "developer"})
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, base+"/step", gin.H{"step": 2})
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, base+"/step", gin.H{"step": 3})
	s.Equal(http.StatusBadRequest, rr.Code)
	var errBody struct {
		Message string   `json:"message"`
		Fields  []string `json:"fields"`
	}
	s.decode(rr, &errBody)
	s.Equal("Please fill in all required fields", errBody.Message)
	s.Contains(errBody.Fields, "full_name")

	rr = s.do(http.MethodPut, base+"/details", gin.H{
		"full_name": "Jane Doe",
		"job_title": "Engineer",
		"email":     "jane@example.com",
		"bio":       "Builds <things>.",
		"skills":    "Go, SQL, ,C++",
	})
	s.Require().Equal(http.StatusOK, rr.Code)
	var dto SessionDTO
	s.decode(rr, &dto)
	s.Equal([]string{"Go", "SQL", "C++"}, dto.Details.Skills)
	s.Require().NotNil(dto.Notification)
	s.Equal("Details saved", dto.Notification.Message)

	rr = s.do(http.MethodPost, base+"/step", gin.H{"step": 3})
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPut, base+"/customize", gin.H{
		"theme":    "purple",
		"projects": []gin.H{{"name": "Site", "desc": "Personal site", "url": "https://example.com"}},
	})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &dto)
	s.Equal("purple", dto.Theme)
	s.True(dto.IncludeProjects, "include_projects defaults to true")

	rr = s.do(http.MethodGet, base+"/preview", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "text/html")
	s.Equal("Preview generated successfully!", rr.Header().Get("X-Notification"))
	s.Contains(rr.Body.String(), "Builds &lt;things&gt;.")
	s.Contains(rr.Body.String(), "#8b5cf6")
	s.Contains(rr.Body.String(), "Personal site")

	rr = s.do(http.MethodGet, base+"/download", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(`attachment; filename="jane-doe-portfolio.html"`, rr.Header().Get("Content-Disposition"))
	s.True(strings.HasPrefix(rr.Body.String(), "<!DOCTYPE html>"))

	rr = s.do(http.MethodPost, base+"/deploy", nil)
	s.Require().Equal(http.StatusAccepted, rr.Code)

	s.Eventually(func() bool {
		rr := s.do(http.MethodGet, base+"/deploy", nil)
		var status DeployStatusDTO
		if json.Unmarshal(rr.Body.Bytes(), &status) != nil {
			return false
		}
		return status.State == "ready" && status.URL == "https://jane-doe.example.app"
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *HandlerTestSuite) Test_Session_BadAndUnknownID() {
	rr := s.do(http.MethodGet, "/api/sessions/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/api/sessions/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodGet, "/api/sessions/"+uuid.NewString()+"/deploy", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerTestSuite) Test_UploadImage() {
	id := s.createSession()
	png, err := base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")
	s.Require().NoError(err)

	upload := func(field string, data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile(field, "avatar.png")
		s.Require().NoError(err)
		_, err = fw.Write(data)
		s.Require().NoError(err)
		s.Require().NoError(mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/image", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, req)
		return rr
	}

	rr := upload("profileImage", png)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var dto SessionDTO
	s.decode(rr, &dto)
	s.True(strings.HasPrefix(dto.ProfileImage, "data:image/png;base64,"))
	s.Require().NotNil(dto.Notification)

	rr = upload("profileImage", []byte("#!/bin/sh\necho hi\n"))
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = upload("other", png)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) Test_Render_Stateless() {
	body := gin.H{
		"profile": gin.H{
			"full_name": "Ada <b>Lovelace</b>",
			"job_title": "Analyst",
			"email":     "ada@example.com",
			"website":   "javascript:alert(1)",
			"bio":       "Numbers.",
			"skills":    []string{"Math"},
		},
		"theme": "orange",
	}

	rr := s.do(http.MethodPost, "/api/render?variant=document", body)
	s.Require().Equal(http.StatusOK, rr.Code)
	html := rr.Body.String()
	s.True(strings.HasPrefix(html, "<!DOCTYPE html>"))
	s.Contains(html, "Ada &lt;b&gt;Lovelace&lt;/b&gt;")
	s.NotContains(html, "javascript:alert")
	s.Contains(html, "#f59e0b")

	rr = s.do(http.MethodPost, "/api/render", body)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `class="portfolio-preview"`)

	rr = s.do(http.MethodPost, "/api/render?variant=pdf", body)
	s.Equal(http.StatusBadRequest, rr.Code)

	body["theme"] = "teal"
	rr = s.do(http.MethodPost, "/api/render", body)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) Test_ColorScheme_Cookie() {
	rr := s.do(http.MethodGet, "/api/preferences/color-scheme", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"color_scheme":"light"}`, rr.Body.String())

	var client *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == ClientIDCookie {
			client = c
		}
	}
	s.Require().NotNil(client, "pg_client cookie is issued")
	_, err := uuid.Parse(client.Value)
	s.NoError(err)

	rr = s.do(http.MethodPut, "/api/preferences/color-scheme", gin.H{"color_scheme": "dark"}, client)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Empty(rr.Result().Cookies(), "existing client keeps its cookie")

	rr = s.do(http.MethodGet, "/api/preferences/color-scheme", nil, client)
	s.JSONEq(`{"color_scheme":"dark"}`, rr.Body.String())

	rr = s.do(http.MethodPost, "/api/preferences/color-scheme/toggle", nil, client)
	s.JSONEq(`{"color_scheme":"light"}`, rr.Body.String())

	rr = s.do(http.MethodPut, "/api/preferences/color-scheme", gin.H{"color_scheme": "sepia"}, client)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerTestSuite) Test_PremiumCheckout_Redirects() {
	rr := s.do(http.MethodGet, "/api/premium/checkout", nil)
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(checkoutURL, rr.Header().Get("Location"))
}
