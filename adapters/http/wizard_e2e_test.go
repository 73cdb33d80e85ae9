package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
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

// WizardE2ETestSuite runs against the Redis and Postgres named in config.yaml / env.
type WizardE2ETestSuite struct {
	suite.Suite
	Router *gin.Engine
	pool   *pgxpool.Pool
	rdb    *redis.Client
	queue  *event.InProcessDeployQueue
}

func (s *WizardE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}
	cfg.Deploy.Delay = 50 * time.Millisecond

	appLogger := logger.NewZapLogger("development")

	s.pool, err = pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.rdb, err = persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect redis: %v", err)
	}

	sessionRepo := persistence.NewRedisSessionRepo(s.rdb, cfg.Session.TTL, appLogger)
	preferenceRepo := persistence.NewPostgresPreferenceRepo(s.pool, appLogger)

	wizardUseCase := wizardUC.NewWizardUseCase(sessionRepo, cfg.Upload.MaxImageBytes, appLogger)
	deployUseCase := deployUC.NewDeployUseCase(sessionRepo, nil, deploy.NewSimulatedDeployer(cfg, appLogger), cfg.Deploy.Timeout, appLogger)
	s.queue = event.NewInProcessDeployQueue(deployUseCase.ExecuteProcess, 1, 8, appLogger)
	deployUseCase.SetQueue(s.queue)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(Handlers{
		Wizard:     NewWizardHandler(wizardUseCase, deployUseCase, appLogger),
		Render:     NewRenderHandler(wizardUseCase, appLogger),
		Preference: NewPreferenceHandler(prefUC.NewPreferenceUseCase(preferenceRepo, appLogger), appLogger),
		Premium:    NewPremiumHandler(cfg.Premium.CheckoutURL),
	}, "portfolio-e2e", appLogger)
}

func (s *WizardE2ETestSuite) TearDownSuite() {
	if s.queue != nil {
		s.queue.Close()
	}
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func TestWizardE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(WizardE2ETestSuite))
}

func (s *WizardE2ETestSuite) send(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
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

func (s *WizardE2ETestSuite) Test_Wizard_Deploy_Flow() {
	rr := s.send(http.MethodPost, "/api/sessions", nil)
	assert.Equal(s.T(), http.StatusCreated, rr.Code)

	var session SessionDTO
	json.Unmarshal(rr.Body.Bytes(), &session)
	base := "/api/sessions/" + session.ID.String()

	rr = s.send(http.MethodPut, base+"/template", gin.H{"template": "designer"})
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.send(http.MethodPut, base+"/details", gin.H{
		"full_name": "E2E Tester",
		"job_title": "QA",
		"email":     "e2e@example.com",
		"bio":       "Checks things end to end.",
		"skills":    "Go, Redis",
	})
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.send(http.MethodPost, base+"/deploy", nil)
	assert.Equal(s.T(), http.StatusAccepted, rr.Code)

	assert.Eventually(s.T(), func() bool {
		rr := s.send(http.MethodGet, base+"/deploy", nil)
		var status DeployStatusDTO
		json.Unmarshal(rr.Body.Bytes(), &status)
		return status.State == "ready"
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *WizardE2ETestSuite) Test_ColorScheme_Persists() {
	rr := s.send(http.MethodPost, "/api/preferences/color-scheme/toggle", nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), `{"color_scheme":"dark"}`, rr.Body.String())

	var client *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == ClientIDCookie {
			client = c
		}
	}
	if !assert.NotNil(s.T(), client) {
		return
	}

	rr = s.send(http.MethodGet, "/api/preferences/color-scheme", nil, client)
	assert.JSONEq(s.T(), `{"color_scheme":"dark"}`, rr.Body.String())
}
