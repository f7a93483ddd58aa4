package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Yashraj221B/chemical-management-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateShelf inserts a new shelf. last_updated is stamped server-side,
// overriding any caller-supplied value.
func (a *API) CreateShelf(c *gin.Context) {
	var shelf models.Shelf
	if err := c.ShouldBindJSON(&shelf); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	shelf.Name = strings.TrimSpace(shelf.Name)
	if shelf.Name == "" {
		detail(c, http.StatusBadRequest, "Shelf name is required")
		return
	}

	shelf.ID = uuid.New().String()
	shelf.LastUpdated = time.Now().UTC()

	_, err := a.DB.Exec(
		`INSERT INTO shelves (id, name, location, shelf_initial, last_updated) VALUES ($1, $2, $3, $4, $5)`,
		shelf.ID,
		shelf.Name,
		shelf.Location,
		shelf.ShelfInitial,
		shelf.LastUpdated,
	)
	if err != nil {
		log.Printf("Error inserting shelf: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating shelf")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": shelf.ID, "msg": "Shelf created successfully"})
}

// ListShelves returns a page of shelves. Like chemical listing, the order is
// whatever the store yields.
func (a *API) ListShelves(c *gin.Context) {
	params := parseListQueryParams(c.Query("skip"), c.Query("limit"))

	rows, err := a.DB.Query(
		`SELECT id, name, location, shelf_initial, last_updated FROM shelves LIMIT $1 OFFSET $2`,
		params.Limit,
		params.Skip,
	)
	if err != nil {
		log.Printf("Error retrieving shelves: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving shelves")
		return
	}
	defer rows.Close()

	shelves := make([]models.Shelf, 0)
	for rows.Next() {
		var shelf models.Shelf
		if err := rows.Scan(&shelf.ID, &shelf.Name, &shelf.Location, &shelf.ShelfInitial, &shelf.LastUpdated); err != nil {
			log.Printf("Error scanning shelf: %v", err)
			detail(c, http.StatusInternalServerError, "Error scanning shelf")
			return
		}
		shelves = append(shelves, shelf)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating shelves: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving shelves")
		return
	}

	c.JSON(http.StatusOK, shelves)
}

// GetShelf returns one shelf by ID.
func (a *API) GetShelf(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf ID format")
		return
	}

	var shelf models.Shelf
	err := a.DB.QueryRow(
		`SELECT id, name, location, shelf_initial, last_updated FROM shelves WHERE id = $1`,
		id,
	).Scan(&shelf.ID, &shelf.Name, &shelf.Location, &shelf.ShelfInitial, &shelf.LastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusNotFound, "Shelf not found")
			return
		}
		log.Printf("Error retrieving shelf: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving shelf")
		return
	}

	c.JSON(http.StatusOK, shelf)
}

// UpdateShelf replaces a shelf's fields and re-stamps last_updated.
func (a *API) UpdateShelf(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf ID format")
		return
	}

	var shelf models.Shelf
	if err := c.ShouldBindJSON(&shelf); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := a.DB.Exec(
		`UPDATE shelves SET name = $1, location = $2, shelf_initial = $3, last_updated = $4 WHERE id = $5`,
		shelf.Name,
		shelf.Location,
		shelf.ShelfInitial,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		log.Printf("Error updating shelf: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating shelf")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading update result: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating shelf")
		return
	}
	if rowsAffected == 0 {
		detail(c, http.StatusNotFound, "Shelf not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Shelf updated successfully"})
}

// DeleteShelf removes a shelf. Deletion is blocked while chemicals still
// reference the shelf unless force=true is passed, in which case those
// chemicals keep a dangling shelf_id that reads tolerate via the left join.
func (a *API) DeleteShelf(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf ID format")
		return
	}

	force := strings.EqualFold(strings.TrimSpace(c.Query("force")), "true")
	if !force {
		var referencing int
		err := a.DB.QueryRow(`SELECT COUNT(*) FROM chemicals WHERE shelf_id = $1`, id).Scan(&referencing)
		if err != nil {
			log.Printf("Error counting shelf chemicals: %v", err)
			detail(c, http.StatusInternalServerError, "Error deleting shelf")
			return
		}
		if referencing > 0 {
			detail(c, http.StatusBadRequest, "Shelf still has chemicals assigned to it")
			return
		}
	}

	result, err := a.DB.Exec(`DELETE FROM shelves WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting shelf: %v", err)
		detail(c, http.StatusInternalServerError, "Error deleting shelf")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading delete result: %v", err)
		detail(c, http.StatusInternalServerError, "Error deleting shelf")
		return
	}
	if rowsAffected == 0 {
		detail(c, http.StatusNotFound, "Shelf not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Shelf deleted successfully"})
}
