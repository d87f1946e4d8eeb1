package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/models"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// OptionHandler serves the values the form selects and view controls offer.
type OptionHandler struct {
	options models.OptionsResponse
}

func NewOptionHandler() *OptionHandler {
	return &OptionHandler{
		options: models.OptionsResponse{
			Statuses:   stringsOf(types.ValidStatuses),
			Priorities: stringsOf(types.ValidPriorities),
			Categories: stringsOf(types.ValidCategories),
			Teams:      append([]string(nil), types.TeamOptions...),
			Members:    append([]string(nil), types.MemberOptions...),
			SortFields: stringsOf(types.ValidSortFields),
			SortOrders: []string{string(types.SortAsc), string(types.SortDesc)},
		},
	}
}

// List - Form and filter options
// GET /api/options
func (h *OptionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.options)
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
