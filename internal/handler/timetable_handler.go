package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
	"github.com/noah-isme/sgh-fet-agent/internal/service"
	appErrors "github.com/noah-isme/sgh-fet-agent/pkg/errors"
	"github.com/noah-isme/sgh-fet-agent/pkg/response"
)

type timetableService interface {
	Run(ctx context.Context, req dto.RunTimetableRequest) (*dto.RunTimetableResponse, error)
	Export(req dto.ExportTimetableRequest) (*service.ExportArtifact, error)
}

// TimetableHandler exposes the solver endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Run godoc
// @Summary Execute the FET solver for a consolidated scheduling request
// @Description Builds the .fet input document, runs the solver binary with a timeout, and returns the decoded schedule plus room summary.
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body dto.RunTimetableRequest true "Consolidated scheduling request"
// @Success 202 {object} response.Envelope
// @Router /fet/run [post]
func (h *TimetableHandler) Run(c *gin.Context) {
	var req dto.RunTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid run payload"))
		return
	}
	result, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}

// Export godoc
// @Summary Render a run summary as CSV or PDF
// @Tags Solver
// @Accept json
// @Produce octet-stream
// @Param payload body dto.ExportTimetableRequest true "Export payload"
// @Success 200 {file} binary
// @Router /fet/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	var req dto.ExportTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	artifact, err := h.service.Export(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Bytes)
}
