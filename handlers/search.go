package handlers

import (
	"net/http"
	"strconv"

	"crm_legal_go/middleware"

	"github.com/labstack/echo/v4"
)

// SearchHandler finds cases and clients by name, file number, court, notes
// or party. ?q= is required, ?limit= is optional.
func SearchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "q es obligatorio"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := middleware.GetStore(c).Search(c.Request().Context(), query, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, results)
}
