package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestSearchChemicalsCaseInsensitive(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	id := uuid.NewString()
	shelfID := uuid.NewString()

	// The handler lowercases the term; the query compares against lowered
	// columns, so "H2SO4" must find a chemical whose formula is "H2SO4".
	mock.
		ExpectQuery(regexp.QuoteMeta(`WHERE lower(c.name) LIKE $1 OR lower(c.formula) LIKE $1 OR lower(array_to_string(c.synonyms, ' ')) LIKE $1 OR lower(c.bottle_number) LIKE $1 OR lower(COALESCE(s.location, '')) LIKE $1`)).
		WithArgs("%h2so4%").
		WillReturnRows(
			sqlmock.NewRows(joinedChemicalColumns()).
				AddRow(id, "Sulfuric acid", shelfID, "H2SO4", "", "{}", "", "", "A001", true,
					shelfID, "Acids", "Room 101", "A", sampleTime()),
		)

	router := newTestRouter(api)
	resp := doJSONRequest(t, router, http.MethodGet, "/chemicals/search/?q=H2SO4", nil, "")
	mustStatus(t, resp.Code, http.StatusOK)

	results := decodeList(t, resp)
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0]["formula"] != "H2SO4" {
		t.Fatalf("unexpected formula: %v", results[0]["formula"])
	}

	expectationsMet(t, mock)
}

func TestSearchChemicalsRequiresQuery(t *testing.T) {
	api, _, cleanup := setupMockAPI(t)
	defer cleanup()

	router := newTestRouter(api)
	resp := doJSONRequest(t, router, http.MethodGet, "/chemicals/search/?q=", nil, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
}
