package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"crm_legal_go/middleware"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{"data": data})
}

func respondCreated(c echo.Context, id uint) error {
	return respondData(c, http.StatusCreated, map[string]uint{"id": id})
}

func respondNotFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: what + " no encontrado"})
}

// respondError maps store errors to status codes. Store failures are logged
// by the store; the client only gets a generic message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "error interno"})
	}
}

// respondChanged answers an update or delete: 404 when the row was missing
func respondChanged(c echo.Context, ok bool, err error, what string) error {
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return respondNotFound(c, what)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID reads a numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: identificador inválido %q", services.ErrValidation, c.Param(name))
	}
	return uint(id), nil
}

// bindAndValidate decodes the request body into dest and runs its validate tags
func bindAndValidate(c echo.Context, dest interface{}) error {
	if err := c.Bind(dest); err != nil {
		return fmt.Errorf("%w: cuerpo de la solicitud inválido", services.ErrValidation)
	}
	if err := c.Validate(dest); err != nil {
		return fmt.Errorf("%w: %s", services.ErrValidation, err.Error())
	}
	return nil
}

// queryBool reads a boolean query parameter, accepting 1/true/yes
func queryBool(c echo.Context, name string) bool {
	switch c.QueryParam(name) {
	case "1", "true", "yes", "si":
		return true
	}
	return false
}

// ensureCase answers 404 when the parent case does not exist. handled is
// true when a response was already written.
func ensureCase(c echo.Context, caseID uint) (handled bool, err error) {
	caseRecord, err := middleware.GetStore(c).GetCase(caseID)
	if err != nil {
		return true, respondError(c, err)
	}
	if caseRecord == nil {
		return true, respondNotFound(c, "caso")
	}
	return false, nil
}
