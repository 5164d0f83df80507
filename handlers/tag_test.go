package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"crm_legal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagHandlers(t *testing.T) {
	store := setupTestStore(t)
	clientID, caseID := seedCase(t, store)

	t.Run("Create is case-insensitive", func(t *testing.T) {
		ids := make([]uint, 0, 2)
		for _, name := range []string{"Urgente", "urgente"} {
			_, c, rec := setupEcho(store, http.MethodPost, "/api/tags", jsonBody(t, map[string]string{"name": name}))
			require.NoError(t, CreateTagHandler(c))
			require.Equal(t, http.StatusOK, rec.Code)
			ids = append(ids, createdID(t, rec))
		}
		assert.Equal(t, ids[0], ids[1])

		_, c, rec := setupEcho(store, http.MethodGet, "/api/tags", nil)
		require.NoError(t, GetTagsHandler(c))
		var tags []models.Tag
		decodeData(t, rec, &tags)
		require.Len(t, tags, 1)
		assert.Equal(t, "urgente", tags[0].Name)
	})

	t.Run("Create with blank name", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/tags", jsonBody(t, map[string]string{"name": "   "}))
		require.NoError(t, CreateTagHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Assign to client twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, c, rec := setupEcho(store, http.MethodPost, "/", jsonBody(t, map[string]string{"name": "VIP"}))
			c.SetParamNames("id")
			c.SetParamValues(strconv.Itoa(int(clientID)))
			require.NoError(t, AssignClientTagHandler(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		}

		_, c, rec := setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(clientID)))
		require.NoError(t, GetClientTagsHandler(c))
		var tags []models.Tag
		decodeData(t, rec, &tags)
		require.Len(t, tags, 1)
		assert.Equal(t, "vip", tags[0].Name)

		_, c, rec = setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id", "tagId")
		c.SetParamValues(strconv.Itoa(int(clientID)), strconv.Itoa(int(tags[0].ID)))
		require.NoError(t, RemoveClientTagHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		remaining, err := store.ListClientTags(clientID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("Assign to case by id", func(t *testing.T) {
		tagID, err := store.AddTag("laboral")
		require.NoError(t, err)

		_, c, rec := setupEcho(store, http.MethodPost, "/", jsonBody(t, map[string]uint{"tag_id": tagID}))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, AssignCaseTagHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, GetCaseTagsHandler(c))
		var tags []models.Tag
		decodeData(t, rec, &tags)
		require.Len(t, tags, 1)

		_, c, rec = setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id", "tagId")
		c.SetParamValues(strconv.Itoa(int(caseID)), strconv.Itoa(int(tagID)))
		require.NoError(t, RemoveCaseTagHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Assign errors", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/", jsonBody(t, map[string]uint{"tag_id": 999}))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, AssignCaseTagHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		_, c, rec = setupEcho(store, http.MethodPost, "/", jsonBody(t, map[string]string{}))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, AssignCaseTagHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		_, c, rec = setupEcho(store, http.MethodPost, "/", jsonBody(t, map[string]string{"name": "x"}))
		c.SetParamNames("id")
		c.SetParamValues("999")
		require.NoError(t, AssignClientTagHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Delete tag", func(t *testing.T) {
		tagID, err := store.AddTag("borrar")
		require.NoError(t, err)

		_, c, rec := setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(tagID)))
		require.NoError(t, DeleteTagHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(tagID)))
		require.NoError(t, GetTagHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
