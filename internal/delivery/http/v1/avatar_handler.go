package v1

import (
	"net/http"
	"strconv"

	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/pkg/apperror"
	"elitefit-backend/pkg/avatar"

	"github.com/gin-gonic/gin"
)

type AvatarHandler struct{}

func NewAvatarHandler(public *gin.RouterGroup) {
	handler := &AvatarHandler{}
	public.GET("/avatars/initials", handler.Initials)
}

// Initials godoc
// @Summary      Initials Avatar
// @Description  Render a PNG avatar with the name's initials. Deterministic for a given name.
// @Tags         avatars
// @Produce      png
// @Param        name  query     string  true   "Display name"
// @Param        size  query     int     false  "Image size in pixels (32-512)"
// @Success      200   {file}    binary
// @Failure      400   {object}  response.Response
// @Router       /avatars/initials [get]
func (h *AvatarHandler) Initials(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "Query parameter 'name' is required", nil)
		return
	}

	size := avatar.DefaultSize
	if sizeParam := c.Query("size"); sizeParam != "" {
		parsed, err := strconv.Atoi(sizeParam)
		if err != nil {
			c.Error(apperror.BadRequest("Query parameter 'size' must be an integer"))
			return
		}
		size = parsed
	}

	img, err := avatar.Render(name, size)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// Avatars are deterministic, cache aggressively
	c.Header("Cache-Control", "public, max-age=86400, immutable")
	c.Data(http.StatusOK, "image/png", img)
}
