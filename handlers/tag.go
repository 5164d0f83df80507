package handlers

import (
	"net/http"

	"crm_legal_go/middleware"

	"github.com/labstack/echo/v4"
)

type tagRequest struct {
	Name string `json:"name" validate:"required"`
}

// tagLinkRequest names the tag by id or by name; a new name creates the tag
type tagLinkRequest struct {
	TagID uint   `json:"tag_id" validate:"required_without=Name"`
	Name  string `json:"name"`
}

func GetTagsHandler(c echo.Context) error {
	tags, err := middleware.GetStore(c).ListTags()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tags)
}

func GetTagHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tag, err := middleware.GetStore(c).GetTag(id)
	if err != nil {
		return respondError(c, err)
	}
	if tag == nil {
		return respondNotFound(c, "etiqueta")
	}
	return respondData(c, http.StatusOK, tag)
}

// CreateTagHandler returns the id of the tag, creating it if needed. The
// same name in any letter case always yields the same id.
func CreateTagHandler(c echo.Context) error {
	var req tagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	id, err := middleware.GetStore(c).AddTag(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]uint{"id": id})
}

func DeleteTagHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteTag(id)
	return respondChanged(c, ok, err, "etiqueta")
}

// resolveTagLink binds a tagLinkRequest and returns an existing tag id.
// handled is true when a response was already written.
func resolveTagLink(c echo.Context) (tagID uint, handled bool, err error) {
	var req tagLinkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return 0, true, respondError(c, err)
	}
	store := middleware.GetStore(c)
	if req.TagID == 0 {
		id, err := store.AddTag(req.Name)
		if err != nil {
			return 0, true, respondError(c, err)
		}
		return id, false, nil
	}
	tag, err := store.GetTag(req.TagID)
	if err != nil {
		return 0, true, respondError(c, err)
	}
	if tag == nil {
		return 0, true, respondNotFound(c, "etiqueta")
	}
	return tag.ID, false, nil
}

func GetClientTagsHandler(c echo.Context) error {
	clientID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tags, err := middleware.GetStore(c).ListClientTags(clientID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tags)
}

// AssignClientTagHandler links a tag to a client; linking twice is a no-op
func AssignClientTagHandler(c echo.Context) error {
	clientID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	store := middleware.GetStore(c)
	client, err := store.GetClient(clientID)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente")
	}
	tagID, handled, err := resolveTagLink(c)
	if handled {
		return err
	}
	if err := store.AssignTagToClient(clientID, tagID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]uint{"tag_id": tagID})
}

func RemoveClientTagHandler(c echo.Context) error {
	clientID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := parseID(c, "tagId")
	if err != nil {
		return respondError(c, err)
	}
	if err := middleware.GetStore(c).RemoveTagFromClient(clientID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func GetCaseTagsHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tags, err := middleware.GetStore(c).ListCaseTags(caseID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tags)
}

// AssignCaseTagHandler links a tag to a case; linking twice is a no-op
func AssignCaseTagHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if handled, err := ensureCase(c, caseID); handled {
		return err
	}
	tagID, handled, err := resolveTagLink(c)
	if handled {
		return err
	}
	if err := middleware.GetStore(c).AssignTagToCase(caseID, tagID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]uint{"tag_id": tagID})
}

func RemoveCaseTagHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := parseID(c, "tagId")
	if err != nil {
		return respondError(c, err)
	}
	if err := middleware.GetStore(c).RemoveTagFromCase(caseID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
