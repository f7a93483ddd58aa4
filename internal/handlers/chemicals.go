package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/Yashraj221B/chemical-management-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Every chemical read joins the shelf. The join is a left join: a dangling
// shelf reference yields a null shelf field, never an error.
const (
	chemicalSelectColumns = `c.id, c.name, c.shelf_id, c.formula, c.formula_latex, c.synonyms, c.msds_url, c.structure_2d_url, c.bottle_number, c.is_concentrated, s.id, s.name, s.location, s.shelf_initial, s.last_updated`
	chemicalJoinClause    = `FROM chemicals c LEFT JOIN shelves s ON s.id = c.shelf_id`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChemicalWithShelf(row rowScanner) (models.ChemicalWithShelf, error) {
	var out models.ChemicalWithShelf
	var shelfID, shelfName, shelfLocation, shelfInitial sql.NullString
	var shelfLastUpdated sql.NullTime

	err := row.Scan(
		&out.ID,
		&out.Name,
		&out.ShelfID,
		&out.Formula,
		&out.FormulaLatex,
		&out.Synonyms,
		&out.MsdsURL,
		&out.Structure2DURL,
		&out.BottleNumber,
		&out.IsConcentrated,
		&shelfID,
		&shelfName,
		&shelfLocation,
		&shelfInitial,
		&shelfLastUpdated,
	)
	if err != nil {
		return out, err
	}

	if shelfID.Valid {
		out.Shelf = &models.Shelf{
			ID:           shelfID.String,
			Name:         shelfName.String,
			Location:     shelfLocation.String,
			ShelfInitial: shelfInitial.String,
			LastUpdated:  shelfLastUpdated.Time,
		}
	}

	return out, nil
}

func (a *API) queryChemicalsWithShelf(c *gin.Context, query string, args ...any) ([]models.ChemicalWithShelf, bool) {
	rows, err := a.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error retrieving chemicals: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving chemicals")
		return nil, false
	}
	defer rows.Close()

	chemicals := make([]models.ChemicalWithShelf, 0)
	for rows.Next() {
		chemical, err := scanChemicalWithShelf(rows)
		if err != nil {
			log.Printf("Error scanning chemical: %v", err)
			detail(c, http.StatusInternalServerError, "Error scanning chemical")
			return nil, false
		}
		chemicals = append(chemicals, chemical)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating chemicals: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving chemicals")
		return nil, false
	}

	return chemicals, true
}

// ListChemicals returns a page of chemicals joined with their shelves.
// Pagination is unordered: no sort key existed in the original data, so page
// order is whatever the store yields.
func (a *API) ListChemicals(c *gin.Context) {
	params := parseListQueryParams(c.Query("skip"), c.Query("limit"))

	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` LIMIT $1 OFFSET $2`
	chemicals, ok := a.queryChemicalsWithShelf(c, query, params.Limit, params.Skip)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, chemicals)
}

// SearchChemicals does a case-insensitive substring match against name,
// formula, synonyms, bottle number and the joined shelf's location.
func (a *API) SearchChemicals(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		detail(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	pattern := "%" + strings.ToLower(term) + "%"
	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` WHERE lower(c.name) LIKE $1 OR lower(c.formula) LIKE $1 OR lower(array_to_string(c.synonyms, ' ')) LIKE $1 OR lower(c.bottle_number) LIKE $1 OR lower(COALESCE(s.location, '')) LIKE $1`

	chemicals, ok := a.queryChemicalsWithShelf(c, query, pattern)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, chemicals)
}

// GetChemicalsByFormula returns all chemicals with an exact formula match.
func (a *API) GetChemicalsByFormula(c *gin.Context) {
	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` WHERE c.formula = $1`
	chemicals, ok := a.queryChemicalsWithShelf(c, query, c.Param("formula"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, chemicals)
}

// GetChemicalsByLocation returns all chemicals on shelves at an exact location.
func (a *API) GetChemicalsByLocation(c *gin.Context) {
	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` WHERE s.location = $1`
	chemicals, ok := a.queryChemicalsWithShelf(c, query, c.Param("location"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, chemicals)
}

// GetChemicalByBottleNumber returns the single chemical carrying a bottle
// number, 404 when none does.
func (a *API) GetChemicalByBottleNumber(c *gin.Context) {
	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` WHERE c.bottle_number = $1`
	chemical, err := scanChemicalWithShelf(a.DB.QueryRow(query, c.Param("bottle_number")))
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusNotFound, "Chemical not found")
			return
		}
		log.Printf("Error retrieving chemical by bottle number: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving chemical")
		return
	}

	c.JSON(http.StatusOK, chemical)
}

// GetChemical returns one chemical by ID, joined with its shelf.
func (a *API) GetChemical(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	query := `SELECT ` + chemicalSelectColumns + ` ` + chemicalJoinClause + ` WHERE c.id = $1`
	chemical, err := scanChemicalWithShelf(a.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusNotFound, "Chemical not found")
			return
		}
		log.Printf("Error retrieving chemical: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving chemical")
		return
	}

	c.JSON(http.StatusOK, chemical)
}

// CreateChemical inserts a new chemical. The caller supplies the bottle
// number; auto-generation is advisory via the next-bottle-number endpoint.
// The shelf reference is validated here and only here.
func (a *API) CreateChemical(c *gin.Context) {
	var chemical models.Chemical
	if err := c.ShouldBindJSON(&chemical); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	chemical.Name = strings.TrimSpace(chemical.Name)
	chemical.BottleNumber = strings.TrimSpace(chemical.BottleNumber)
	if chemical.Name == "" || chemical.BottleNumber == "" {
		detail(c, http.StatusBadRequest, "Name and bottle number are required")
		return
	}

	if _, err := uuid.Parse(chemical.ShelfID); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf_id format")
		return
	}
	if chemical.Synonyms == nil {
		chemical.Synonyms = pq.StringArray{}
	}

	var bottleTaken bool
	err := a.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM chemicals WHERE bottle_number = $1)`,
		chemical.BottleNumber,
	).Scan(&bottleTaken)
	if err != nil {
		log.Printf("Error checking bottle number: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating chemical")
		return
	}
	if bottleTaken {
		detail(c, http.StatusBadRequest, "Bottle number already exists")
		return
	}

	var shelfInitial string
	err = a.DB.QueryRow(
		`SELECT shelf_initial FROM shelves WHERE id = $1`,
		chemical.ShelfID,
	).Scan(&shelfInitial)
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusBadRequest, "Invalid shelf reference")
			return
		}
		log.Printf("Error checking shelf reference: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating chemical")
		return
	}

	chemical.ID = uuid.New().String()
	_, err = a.DB.Exec(
		`INSERT INTO chemicals (id, name, shelf_id, formula, formula_latex, synonyms, msds_url, structure_2d_url, bottle_number, is_concentrated) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		chemical.ID,
		chemical.Name,
		chemical.ShelfID,
		chemical.Formula,
		chemical.FormulaLatex,
		chemical.Synonyms,
		chemical.MsdsURL,
		chemical.Structure2DURL,
		chemical.BottleNumber,
		chemical.IsConcentrated,
	)
	if err != nil {
		// Two concurrent creates can both pass the pre-check; the unique
		// index on bottle_number is the real guarantee.
		if isUniqueViolation(err) {
			detail(c, http.StatusBadRequest, "Bottle number already exists")
			return
		}
		log.Printf("Error inserting chemical: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating chemical")
		return
	}

	// Remember the highest suffix ever assigned under this shelf's prefix so
	// that next-bottle-number never hands out a number freed by a deletion.
	if shelfInitial != "" {
		if suffix, ok := strictBottleSuffix(chemical.BottleNumber, shelfInitial); ok {
			_, err = a.DB.Exec(
				`UPDATE shelves SET last_bottle_suffix = GREATEST(last_bottle_suffix, $1) WHERE id = $2`,
				suffix,
				chemical.ShelfID,
			)
			if err != nil {
				// The chemical is already stored; a stale counter only risks
				// suggesting an in-use number, which create rejects anyway.
				log.Printf("Error advancing bottle counter: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": chemical.ID})
}

// UpdateChemical does a full replace of the mutable fields. There is no
// application-level bottle-number pre-check here; the unique index still
// rejects an update that would introduce a duplicate.
func (a *API) UpdateChemical(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var chemical models.Chemical
	if err := c.ShouldBindJSON(&chemical); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := uuid.Parse(chemical.ShelfID); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf_id format")
		return
	}
	if chemical.Synonyms == nil {
		chemical.Synonyms = pq.StringArray{}
	}

	result, err := a.DB.Exec(
		`UPDATE chemicals SET name = $1, shelf_id = $2, formula = $3, formula_latex = $4, synonyms = $5, msds_url = $6, structure_2d_url = $7, bottle_number = $8, is_concentrated = $9 WHERE id = $10`,
		chemical.Name,
		chemical.ShelfID,
		chemical.Formula,
		chemical.FormulaLatex,
		chemical.Synonyms,
		chemical.MsdsURL,
		chemical.Structure2DURL,
		chemical.BottleNumber,
		chemical.IsConcentrated,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			detail(c, http.StatusBadRequest, "Bottle number already exists")
			return
		}
		log.Printf("Error updating chemical: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating chemical")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading update result: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating chemical")
		return
	}
	if rowsAffected == 0 {
		detail(c, http.StatusNotFound, "Chemical not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Updated successfully"})
}

// DeleteChemical removes a chemical, 404 when the ID matches nothing.
func (a *API) DeleteChemical(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	result, err := a.DB.Exec(`DELETE FROM chemicals WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting chemical: %v", err)
		detail(c, http.StatusInternalServerError, "Error deleting chemical")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading delete result: %v", err)
		detail(c, http.StatusInternalServerError, "Error deleting chemical")
		return
	}
	if rowsAffected == 0 {
		detail(c, http.StatusNotFound, "Chemical not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Deleted successfully"})
}
