package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// Create reads a multipart form: the report fields plus optional files[].
func (rc *ReportController) Create(c *gin.Context) {
	var input CreateReportRequest
	if err := c.ShouldBind(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	var files []services.MediaFile
	if form, err := c.MultipartForm(); err == nil {
		files = uploadedFiles(form)
		defer form.RemoveAll()
	}

	report, err := rc.Reports.Create(c.Request.Context(), utils.GetUser(c), services.CreateReportInput{
		Category:       input.Category,
		Description:    input.Description,
		Latitude:       *input.Latitude,
		Longitude:      *input.Longitude,
		Address:        input.Address,
		City:           input.City,
		ReportStatusID: optionalUUID(input.ReportStatusID),
		Files:          files,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Report created", report)
}

func (rc *ReportController) List(c *gin.Context) {
	var query ListReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	page := query.Page()
	reports, err := rc.Reports.List(c.Request.Context(), services.ListReportsInput{
		Page:   page,
		Status: query.Status,
		UserID: optionalUUID(query.UserID),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Reports retrieved", listOf(reports, len(reports), page))
}

func (rc *ReportController) Mine(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		RespondError(c, services.ErrUnauthenticated)
		return
	}
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	page := query.Page()
	reports, err := rc.Reports.List(c.Request.Context(), services.ListReportsInput{Page: page, UserID: &user.ID})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Reports retrieved", listOf(reports, len(reports), page))
}

func (rc *ReportController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	report, err := rc.Reports.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report retrieved", report)
}

func (rc *ReportController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var input UpdateReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	report, err := rc.Reports.Update(c.Request.Context(), utils.GetUser(c), id, services.UpdateReportInput{
		Category:       input.Category,
		Description:    input.Description,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Address:        input.Address,
		City:           input.City,
		ReportStatusID: input.ReportStatusID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report updated", report)
}

func (rc *ReportController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Reports.Delete(c.Request.Context(), utils.GetUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report deleted", nil)
}

func (rc *ReportController) Statuses(c *gin.Context) {
	statuses, err := rc.Reports.Statuses(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Report statuses", statuses)
}
