package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/models"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
)

// ============================================
// Form Handler
// ============================================

type FormHandler struct {
	formService service.FormService
}

func NewFormHandler(formService service.FormService) *FormHandler {
	return &FormHandler{
		formService: formService,
	}
}

// Create - Open a new creation form
// POST /api/forms
func (h *FormHandler) Create(c *gin.Context) {
	form, err := h.formService.New(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to open form")
		return
	}

	c.JSON(http.StatusCreated, toFormResponse(form))
}

// Get - Current form state
// GET /api/forms/:id
func (h *FormHandler) Get(c *gin.Context) {
	form, err := h.formService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to fetch form")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// Open - Re-open a closed form
// POST /api/forms/:id/open
func (h *FormHandler) Open(c *gin.Context) {
	form, err := h.formService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to open form")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// Update - Set draft fields
// PATCH /api/forms/:id
func (h *FormHandler) Update(c *gin.Context) {
	var req models.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formService.Update(c.Request.Context(), c.Param("id"), service.DraftPatch{
		Name:     req.Name,
		Status:   req.Status,
		Deadline: req.Deadline,
		Progress: req.Progress,
		Priority: req.Priority,
		Category: req.Category,
		TeamName: req.TeamName,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to update form")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// SetScratch - Replace the team member input text
// PUT /api/forms/:id/scratch
func (h *FormHandler) SetScratch(c *gin.Context) {
	var req models.ScratchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formService.SetScratch(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		handleServiceError(c, err, "Failed to update form")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// PressKey - Key event on the team member input
// POST /api/forms/:id/keys
func (h *FormHandler) PressKey(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handled, form, err := h.formService.PressKey(c.Request.Context(), c.Param("id"), req.Key)
	if err != nil {
		handleServiceError(c, err, "Failed to handle key")
		return
	}

	c.JSON(http.StatusOK, models.KeyResponse{
		Handled: handled,
		Form:    toFormResponse(form),
	})
}

// RemoveMember - Drop a team member by position
// DELETE /api/forms/:id/members/:index
func (h *FormHandler) RemoveMember(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member index"})
		return
	}

	form, err := h.formService.RemoveMember(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		handleServiceError(c, err, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// Submit - Commit the draft as a new project
// POST /api/forms/:id/submit
func (h *FormHandler) Submit(c *gin.Context) {
	project, form, err := h.formService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to submit form")
		return
	}

	c.JSON(http.StatusCreated, models.SubmitResponse{
		Project: toProjectResponse(project),
		Form:    toFormResponse(form),
	})
}

// Cancel - Close the form and discard edits
// POST /api/forms/:id/cancel
func (h *FormHandler) Cancel(c *gin.Context) {
	form, err := h.formService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to cancel form")
		return
	}

	c.JSON(http.StatusOK, toFormResponse(form))
}

// Discard - Drop the form session
// DELETE /api/forms/:id
func (h *FormHandler) Discard(c *gin.Context) {
	if err := h.formService.Discard(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err, "Failed to discard form")
		return
	}

	c.Status(http.StatusNoContent)
}
