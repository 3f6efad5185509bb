package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type LocationController struct {
	Locations *services.LocationService
}

func NewLocationController(locations *services.LocationService) *LocationController {
	return &LocationController{Locations: locations}
}

func (lc *LocationController) List(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	page := query.Page()
	locations, err := lc.Locations.List(c.Request.Context(), page)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Locations retrieved", listOf(locations, len(locations), page))
}

func (lc *LocationController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	location, err := lc.Locations.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Location retrieved", location)
}

func (lc *LocationController) Create(c *gin.Context) {
	var input LocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	location, err := lc.Locations.Create(c.Request.Context(), services.LocationInput{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Address:   input.Address,
		City:      input.City,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Location created", location)
}

// Nearby returns locations within radius_km of the point, nearest first.
func (lc *LocationController) Nearby(c *gin.Context) {
	var input NearbyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	locations, err := lc.Locations.Nearby(c.Request.Context(), services.NearbyInput{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		RadiusKm:  input.RadiusKm,
		Limit:     input.Limit,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Nearby locations", locations)
}

func (lc *LocationController) Distance(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query DistanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	meters, err := lc.Locations.DistanceMeters(c.Request.Context(), id, *query.Latitude, *query.Longitude)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Distance calculated", gin.H{"distance_m": meters})
}

func (lc *LocationController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var input LocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	location, err := lc.Locations.Update(c.Request.Context(), utils.GetUser(c), id, services.LocationInput{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Address:   input.Address,
		City:      input.City,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Location updated", location)
}

func (lc *LocationController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := lc.Locations.Delete(c.Request.Context(), utils.GetUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Location deleted", nil)
}
