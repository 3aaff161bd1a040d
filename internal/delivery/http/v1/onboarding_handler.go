package v1

import (
	"net/http"

	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	wizardUC domain.WizardUsecase
}

// NewOnboardingHandler wires the onboarding wizard routes. The wizard runs
// before any identity exists, so all routes are public; state is addressed
// by an unguessable wizard id.
func NewOnboardingHandler(public *gin.RouterGroup, wizardUC domain.WizardUsecase) {
	handler := &OnboardingHandler{wizardUC: wizardUC}

	onboarding := public.Group("/onboarding")
	{
		onboarding.POST("", handler.Start)
		onboarding.GET("/:id", handler.Get)
		onboarding.POST("/:id/advance", handler.Advance)
		onboarding.POST("/:id/back", handler.Back)
	}
}

// Start godoc
// @Summary      Start Onboarding
// @Description  Begin a new onboarding wizard at step 1.
// @Tags         onboarding
// @Produce      json
// @Success      201  {object}  response.Response
// @Router       /onboarding [post]
func (h *OnboardingHandler) Start(c *gin.Context) {
	state, err := h.wizardUC.Start(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Onboarding started", state)
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	state, err := h.wizardUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding state", state)
}

// Advance godoc
// @Summary      Advance Onboarding
// @Description  Merge the submitted fields, validate the current step, and move forward. At the last step the wizard completes instead of producing another step.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Wizard ID"
// @Param        form  body      domain.WizardForm  true  "Step fields"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /onboarding/{id}/advance [post]
func (h *OnboardingHandler) Advance(c *gin.Context) {
	var patch domain.WizardForm
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	state, err := h.wizardUC.Advance(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Onboarding advanced"
	if state.Completed {
		// Handoff: the client takes the wizard id to registration
		msg = "Onboarding completed"
	}
	response.Success(c, http.StatusOK, msg, state)
}

func (h *OnboardingHandler) Back(c *gin.Context) {
	state, err := h.wizardUC.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding stepped back", state)
}
