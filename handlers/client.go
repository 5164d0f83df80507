package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
)

// GetClientsHandler lists all clients by name
func GetClientsHandler(c echo.Context) error {
	clients, err := middleware.GetStore(c).ListClients()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, clients)
}

// GetClientHandler returns one client
func GetClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	client, err := middleware.GetStore(c).GetClient(id)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente")
	}
	return respondData(c, http.StatusOK, client)
}

// CreateClientHandler adds a client
func CreateClientHandler(c echo.Context) error {
	var client models.Client
	if err := bindAndValidate(c, &client); err != nil {
		return respondError(c, err)
	}
	client.ID = 0
	id, err := middleware.GetStore(c).AddClient(client)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

// UpdateClientHandler applies a partial update
func UpdateClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.ClientUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateClient(id, update)
	return respondChanged(c, ok, err, "cliente")
}

// DeleteClientHandler removes a client with all its cases
func DeleteClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteClient(id)
	return respondChanged(c, ok, err, "cliente")
}

// GetClientCasesHandler lists the cases of a client
func GetClientCasesHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	cases, err := middleware.GetStore(c).ListCasesByClient(id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, cases)
}

// ImportClientsHandler loads clients from an uploaded .xlsx file
func ImportClientsHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "falta el archivo"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "no se pudo leer el archivo"})
	}
	defer file.Close()

	result, err := services.ImportClients(middleware.GetStore(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}
