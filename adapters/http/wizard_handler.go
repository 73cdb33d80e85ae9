package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	deployUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/deploy"
	wizardUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/wizard"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

const profileImageField = "profileImage"

type WizardHandler struct {
	wizardUseCase *wizardUC.WizardUseCase
	deployUseCase *deployUC.DeployUseCase
	logger        logger.Logger
}

func NewWizardHandler(wuc *wizardUC.WizardUseCase, duc *deployUC.DeployUseCase, log logger.Logger) *WizardHandler {
	return &WizardHandler{
		wizardUseCase: wuc,
		deployUseCase: duc,
		logger:        log,
	}
}

func (h *WizardHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": wizard.Templates()})
}

func (h *WizardHandler) CreateSession(c *gin.Context) {
	output, err := h.wizardUseCase.ExecuteCreateSession(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	output, err := h.wizardUseCase.ExecuteGetSession(c.Request.Context(), wizardUC.GetSessionInput{SessionID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) SelectTemplate(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req SelectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for template selection", err))
		return
	}

	output, err := h.wizardUseCase.ExecuteSelectTemplate(c.Request.Context(), wizardUC.SelectTemplateInput{
		SessionID: id,
		Template:  req.Template,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) UpdateDetails(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for details", err))
		return
	}

	output, err := h.wizardUseCase.ExecuteUpdateDetails(c.Request.Context(), wizardUC.UpdateDetailsInput{
		SessionID: id,
		Details:   req.ToDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) UploadImage(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile(profileImageField)
	if err != nil {
		c.Error(apperror.NewInvalidInput(fmt.Sprintf("multipart field %q is required", profileImageField), err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.wizardUseCase.ExecuteUploadImage(c.Request.Context(), wizardUC.UploadImageInput{
		SessionID: id,
		File:      file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) Customize(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req CustomizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for customization", err))
		return
	}

	includeProjects := true
	if req.IncludeProjects != nil {
		includeProjects = *req.IncludeProjects
	}
	output, err := h.wizardUseCase.ExecuteCustomize(c.Request.Context(), wizardUC.CustomizeInput{
		SessionID:       id,
		Theme:           req.Theme,
		IncludeProjects: includeProjects,
		IncludeResume:   req.IncludeResume,
		Projects:        req.Projects,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) GoToStep(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for step change", err))
		return
	}

	output, err := h.wizardUseCase.ExecuteGoToStep(c.Request.Context(), wizardUC.GoToStepInput{
		SessionID: id,
		Step:      req.Step,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Notification))
}

func (h *WizardHandler) Preview(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	output, err := h.wizardUseCase.ExecutePreview(c.Request.Context(), wizardUC.PreviewInput{SessionID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("X-Notification", output.Notification.Message)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(output.HTML))
}

func (h *WizardHandler) Download(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	output, err := h.wizardUseCase.ExecuteDownload(c.Request.Context(), wizardUC.DownloadInput{SessionID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.Filename))
	c.Header("X-Notification", output.Notification.Message)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(output.HTML))
}

func (h *WizardHandler) RequestDeploy(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	output, err := h.deployUseCase.ExecuteRequest(c.Request.Context(), deployUC.RequestInput{SessionID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, ToDeployStatusDTO(output.Deployment, output.Notification))
}

func (h *WizardHandler) DeployStatus(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	output, err := h.deployUseCase.ExecuteStatus(c.Request.Context(), deployUC.StatusInput{SessionID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDeployStatusDTO(output.Deployment, output.Notification))
}
