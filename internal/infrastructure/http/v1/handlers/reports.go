package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"prodcat/internal/core/apperror"
	"prodcat/internal/domain/reports"
	"prodcat/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// DeletedPercentage handles GET /reports/deleted-percentage
func (h *ReportsHandler) DeletedPercentage(c *gin.Context) {
	report, err := h.service.DeletedPercentage(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewDataResponse("Deleted products report", report))
}

// NonDeletedPercentage handles GET /reports/non-deleted-percentage
func (h *ReportsHandler) NonDeletedPercentage(c *gin.Context) {
	var req dto.NonDeletedReportQuery
	if !h.BindQuery(c, &req) {
		return
	}

	params := reports.NonDeletedParams{}

	var err error
	if params.StartDate, err = parseDate(req.StartDate); err != nil {
		h.Error(c, apperror.NewValidation("invalid startDate, expected ISO date"))
		return
	}
	if params.EndDate, err = parseDate(req.EndDate); err != nil {
		h.Error(c, apperror.NewValidation("invalid endDate, expected ISO date"))
		return
	}
	if req.WithPrice != "" {
		withPrice := req.WithPrice == "true"
		params.WithPrice = &withPrice
	}

	report, err := h.service.NonDeletedPercentage(c.Request.Context(), params)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewDataResponse("Percentage of non-deleted products", report))
}

// ModelsByBrand handles GET /reports/models
func (h *ReportsHandler) ModelsByBrand(c *gin.Context) {
	var req dto.ModelsByBrandQuery
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.ModelsByBrand(c.Request.Context(), req.Brands)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewDataResponse("Models by brand", report))
}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
