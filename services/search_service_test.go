package services

import (
	"context"
	"testing"

	"crm_legal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTerms(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"perez", []string{"perez"}},
		{"perez gomez", []string{"perez", "gomez"}},
		{"a", nil},
		{"100%_off", []string{"100", "off"}},
		{"", nil},
		{"   muchos   espacios   ", []string{"muchos", "espacios"}},
		{"ñu", []string{"ñu"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, searchTerms(tt.input))
		})
	}
}

func TestSearchLimit(t *testing.T) {
	assert.Equal(t, 10, searchLimit(0))
	assert.Equal(t, 10, searchLimit(-5))
	assert.Equal(t, 1, searchLimit(1))
	assert.Equal(t, 50, searchLimit(50))
	assert.Equal(t, 50, searchLimit(51))
	assert.Equal(t, 50, searchLimit(1000))
}

func TestSearch(t *testing.T) {
	store, _ := setupStoreTest(t)
	ctx := context.Background()

	clientID, caseID := seedCase(t, store)
	_, err := store.AddParty(models.Party{CaseID: caseID, Name: "Laura Fernández", Type: "Demandada"})
	require.NoError(t, err)
	otherID, err := store.AddClient(models.Client{Name: "Ana Perez", Phone: "+54 9 221 555"})
	require.NoError(t, err)

	t.Run("Cases before clients", func(t *testing.T) {
		results, err := store.Search(ctx, "perez", 0)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "case", results[0].Type)
		assert.Equal(t, caseID, results[0].CaseID)
		assert.Equal(t, clientID, results[0].ClientID)
		assert.Equal(t, "title", results[0].MatchSource)
		assert.Equal(t, "123", results[0].FileNumber)

		assert.Equal(t, "client", results[1].Type)
		assert.Equal(t, otherID, results[1].ClientID)
		assert.Equal(t, "Juan Perez", results[2].ClientName)
	})

	t.Run("Party name", func(t *testing.T) {
		results, err := store.Search(ctx, "Fernández", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, caseID, results[0].CaseID)
		assert.Equal(t, "party", results[0].MatchSource)
	})

	t.Run("Every word must match", func(t *testing.T) {
		results, err := store.Search(ctx, "gomez 123", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "case", results[0].Type)

		results, err = store.Search(ctx, "gomez inexistente", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Client contact fields", func(t *testing.T) {
		results, err := store.Search(ctx, "juan@example", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "email", results[0].MatchSource)

		results, err = store.Search(ctx, "221", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "phone", results[0].MatchSource)
	})

	t.Run("Limit", func(t *testing.T) {
		results, err := store.Search(ctx, "perez", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("Wildcards and short queries", func(t *testing.T) {
		for _, q := range []string{"", "a", "%", "__"} {
			results, err := store.Search(ctx, q, 10)
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results, q)
		}
	})
}
