package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SearchResult is one client or case matching a search
type SearchResult struct {
	Type        string `json:"type"` // "case" or "client"
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	MatchSource string `json:"match_source"`

	// Case-specific fields
	CaseID     uint   `json:"case_id,omitempty"`
	CaseTitle  string `json:"case_title,omitempty"`
	FileNumber string `json:"file_number,omitempty"`
	Year       string `json:"year,omitempty"`
}

type caseSearchRow struct {
	CaseID     uint
	CaseTitle  string
	FileNumber string
	Year       string
	Court      string
	Notes      string
	ClientID   uint
	ClientName string
}

type clientSearchRow struct {
	ClientID   uint
	ClientName string
	Email      string
	Phone      string
}

// Search finds cases and clients containing every word of query. Cases come
// first, most recently active on top, then clients by name.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	limit = searchLimit(limit)

	terms := searchTerms(query)
	if len(terms) == 0 {
		return []SearchResult{}, nil
	}

	results, err := s.searchCases(ctx, terms, limit)
	if err != nil {
		return nil, s.fail("Search", err)
	}
	clients, err := s.searchClients(ctx, terms, limit)
	if err != nil {
		return nil, s.fail("Search", err)
	}
	results = append(results, clients...)

	if len(results) > limit {
		results = results[:limit]
	}
	s.log.Debug("search", "query", query, "results", len(results))
	return results, nil
}

func (s *Store) searchCases(ctx context.Context, terms []string, limit int) ([]SearchResult, error) {
	q := s.db.WithContext(ctx).
		Table("casos c").
		Select(`c.id AS case_id, c.caratula AS case_title,
			COALESCE(c.numero_expediente, '') AS file_number,
			COALESCE(c.anio_caratula, '') AS year,
			COALESCE(c.juzgado, '') AS court,
			COALESCE(c.notas, '') AS notes,
			cl.id AS client_id, cl.nombre AS client_name`).
		Joins("JOIN clientes cl ON cl.id = c.cliente_id")
	for _, term := range terms {
		p := likePattern(term)
		q = q.Where(`(c.caratula LIKE ? OR c.numero_expediente LIKE ? OR c.juzgado LIKE ?
			OR c.notas LIKE ? OR cl.nombre LIKE ?
			OR EXISTS (SELECT 1 FROM partes_intervinientes p WHERE p.caso_id = c.id AND p.nombre LIKE ?))`,
			p, p, p, p, p, p)
	}

	var rows []caseSearchRow
	if err := q.Order("c.last_activity_timestamp DESC").Order("c.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, SearchResult{
			Type:        "case",
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			CaseID:      r.CaseID,
			CaseTitle:   r.CaseTitle,
			FileNumber:  r.FileNumber,
			Year:        r.Year,
			MatchSource: caseMatchSource(r, terms[0]),
		})
	}
	return results, nil
}

func (s *Store) searchClients(ctx context.Context, terms []string, limit int) ([]SearchResult, error) {
	q := s.db.WithContext(ctx).
		Table("clientes").
		Select(`id AS client_id, nombre AS client_name,
			COALESCE(email, '') AS email, COALESCE(whatsapp, '') AS phone`)
	for _, term := range terms {
		p := likePattern(term)
		q = q.Where("(nombre LIKE ? OR email LIKE ? OR whatsapp LIKE ?)", p, p, p)
	}

	var rows []clientSearchRow
	if err := q.Order("nombre COLLATE NOCASE").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(rows))
	for _, r := range rows {
		source := "client"
		switch {
		case containsFold(r.ClientName, terms[0]):
		case containsFold(r.Email, terms[0]):
			source = "email"
		case containsFold(r.Phone, terms[0]):
			source = "phone"
		}
		results = append(results, SearchResult{
			Type:        "client",
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			MatchSource: source,
		})
	}
	return results, nil
}

// searchLimit defaults a missing limit and caps a large one
func searchLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultSearchLimit
	case limit > maxSearchLimit:
		return maxSearchLimit
	}
	return limit
}

var searchSpecialChars = regexp.MustCompile(`[%_\\*"():+^]`)

// searchTerms splits query into words of at least two characters, dropping
// LIKE wildcards
func searchTerms(query string) []string {
	cleaned := searchSpecialChars.ReplaceAllString(query, " ")
	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) >= 2 {
			terms = append(terms, word)
		}
	}
	return terms
}

func likePattern(term string) string {
	return "%" + term + "%"
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// caseMatchSource reports which field of the case matched the first term
func caseMatchSource(r caseSearchRow, term string) string {
	switch {
	case containsFold(r.CaseTitle, term):
		return "title"
	case containsFold(r.FileNumber, term):
		return "file_number"
	case containsFold(r.ClientName, term):
		return "client"
	case containsFold(r.Court, term):
		return "court"
	case containsFold(r.Notes, term):
		return "notes"
	}
	return "party"
}
