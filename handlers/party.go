package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"

	"github.com/labstack/echo/v4"
)

// GetCasePartiesHandler lists the parties of a case by name
func GetCasePartiesHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	parties, err := middleware.GetStore(c).ListParties(caseID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, parties)
}

func GetPartyHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	party, err := middleware.GetStore(c).GetParty(id)
	if err != nil {
		return respondError(c, err)
	}
	if party == nil {
		return respondNotFound(c, "parte")
	}
	return respondData(c, http.StatusOK, party)
}

func CreatePartyHandler(c echo.Context) error {
	var party models.Party
	if err := bindAndValidate(c, &party); err != nil {
		return respondError(c, err)
	}
	if handled, err := ensureCase(c, party.CaseID); handled {
		return err
	}
	party.ID = 0
	id, err := middleware.GetStore(c).AddParty(party)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

func UpdatePartyHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.PartyUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateParty(id, update)
	return respondChanged(c, ok, err, "parte")
}

func DeletePartyHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteParty(id)
	return respondChanged(c, ok, err, "parte")
}
