package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type VerificationController struct {
	Verifications *services.VerificationService
}

func NewVerificationController(verifications *services.VerificationService) *VerificationController {
	return &VerificationController{Verifications: verifications}
}

func (vc *VerificationController) List(c *gin.Context) {
	var query ListVerificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	page := query.Page()
	verifications, err := vc.Verifications.List(c.Request.Context(), utils.GetUser(c), repository.VerificationFilter{
		Page:     page,
		ReportID: optionalUUID(query.ReportID),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Verifications retrieved", listOf(verifications, len(verifications), page))
}

func (vc *VerificationController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	verification, err := vc.Verifications.Get(c.Request.Context(), utils.GetUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Verification retrieved", verification)
}

// Create records the decision and moves the report to report_status.
func (vc *VerificationController) Create(c *gin.Context) {
	var input CreateVerificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	verification, err := vc.Verifications.Create(c.Request.Context(), utils.GetUser(c), services.CreateVerificationInput{
		ReportID:     input.ReportID,
		Notes:        input.Notes,
		ReportStatus: input.ReportStatus,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Verification created", verification)
}

func (vc *VerificationController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var input UpdateVerificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	verification, err := vc.Verifications.UpdateNotes(c.Request.Context(), utils.GetUser(c), id, input.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Verification updated", verification)
}

func (vc *VerificationController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := vc.Verifications.Delete(c.Request.Context(), utils.GetUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Verification deleted", nil)
}
