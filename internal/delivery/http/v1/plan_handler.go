package v1

import (
	"net/http"
	"strconv"

	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planUC domain.PlanUsecase
}

func NewPlanHandler(protected *gin.RouterGroup, planUC domain.PlanUsecase) {
	handler := &PlanHandler{planUC: planUC}

	plans := protected.Group("/plans")
	{
		plans.GET("", handler.List)
		plans.POST("", handler.Create)
		plans.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create Workout Plan
// @Description  Create a workout plan for the authenticated user.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        plan  body      domain.CreatePlanRequest  true  "Plan details"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req domain.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	accountID := c.GetString(string(domain.KeyAccountID))
	plan, err := h.planUC.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Workout plan created", plan)
}

func (h *PlanHandler) List(c *gin.Context) {
	accountID := c.GetString(string(domain.KeyAccountID))

	plans, err := h.planUC.ListMine(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Workout plans", plans)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid plan id"))
		return
	}

	accountID := c.GetString(string(domain.KeyAccountID))
	if err := h.planUC.Delete(c.Request.Context(), accountID, planID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Workout plan deleted", nil)
}
