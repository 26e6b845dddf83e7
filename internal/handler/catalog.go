package handler

import (
	"net/http"
	"strings"

	"signal-desk/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetAssets godoc
// @Summary      List tradeable assets
// @Description  Returns the static asset catalog, optionally filtered by category
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Asset category (Forex, Crypto, Metals; case-insensitive)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Router       /api/assets [get]
func (h *Handler) GetAssets(c *gin.Context) {
	category := domain.AssetCategory(strings.TrimSpace(c.Query("category")))
	if category == "" {
		c.JSON(http.StatusOK, gin.H{"assets": domain.Assets})
		return
	}

	out := make([]domain.Asset, 0, len(domain.Assets))
	for _, a := range domain.Assets {
		if strings.EqualFold(string(a.Category), string(category)) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + string(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": out})
}

// GetTimeframes godoc
// @Summary      List supported timeframes
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/timeframes [get]
func (h *Handler) GetTimeframes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeframes": domain.SupportedTimeframes})
}
