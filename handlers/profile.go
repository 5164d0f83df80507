package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler returns the attorney profile, empty when never saved
func GetProfileHandler(c echo.Context) error {
	profile, err := middleware.GetStore(c).GetProfile()
	if err != nil {
		return respondError(c, err)
	}
	if profile == nil {
		profile = &models.UserProfile{ID: models.ProfileID}
	}
	return respondData(c, http.StatusOK, profile)
}

// UpdateProfileHandler saves the supplied profile fields
func UpdateProfileHandler(c echo.Context) error {
	var update models.ProfileUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	saved, err := middleware.GetStore(c).SaveProfile(update)
	if err != nil {
		return respondError(c, err)
	}
	if !saved {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "no se enviaron datos del perfil"})
	}
	return c.NoContent(http.StatusNoContent)
}
