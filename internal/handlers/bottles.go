package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NextBottleNumber suggests the next bottle number for a shelf: the shelf's
// prefix followed by max-used-suffix+1, zero-padded to three digits. Only
// bottle numbers of the exact form <prefix><3 digits> count as used, and gaps
// left by deletions are never reused.
func (a *API) NextBottleNumber(c *gin.Context) {
	shelfID := strings.TrimSpace(c.Query("shelf_id"))
	if _, err := uuid.Parse(shelfID); err != nil {
		detail(c, http.StatusBadRequest, "Invalid shelf ID")
		return
	}

	var initial string
	var lastSuffix int
	err := a.DB.QueryRow(`SELECT shelf_initial, last_bottle_suffix FROM shelves WHERE id = $1`, shelfID).Scan(&initial, &lastSuffix)
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusNotFound, "Shelf not found")
			return
		}
		log.Printf("Error retrieving shelf: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving shelf")
		return
	}

	if initial == "" {
		detail(c, http.StatusBadRequest, "Shelf has no initial defined")
		return
	}

	rows, err := a.DB.Query(`SELECT bottle_number FROM chemicals WHERE bottle_number LIKE $1 || '%'`, initial)
	if err != nil {
		log.Printf("Error retrieving bottle numbers: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving bottle numbers")
		return
	}
	defer rows.Close()

	// Start from the shelf's high-water mark: numbers freed by deletions are
	// never reused. The live scan still wins when updates introduced numbers
	// the counter never saw.
	maxUsed := lastSuffix
	for rows.Next() {
		var bottleNumber string
		if err := rows.Scan(&bottleNumber); err != nil {
			log.Printf("Error scanning bottle number: %v", err)
			detail(c, http.StatusInternalServerError, "Error retrieving bottle numbers")
			return
		}

		suffix, ok := strictBottleSuffix(bottleNumber, initial)
		if !ok {
			continue
		}
		if suffix > maxUsed {
			maxUsed = suffix
		}
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating bottle numbers: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving bottle numbers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"next_bottle_number": fmt.Sprintf("%s%03d", initial, maxUsed+1),
	})
}

// strictBottleSuffix extracts the numeric suffix from a bottle number of the
// exact form <prefix><3 digits>. Anything else does not count as used.
func strictBottleSuffix(bottleNumber, prefix string) (int, bool) {
	if !strings.HasPrefix(bottleNumber, prefix) {
		return 0, false
	}
	suffix := bottleNumber[len(prefix):]
	if len(suffix) != 3 {
		return 0, false
	}
	value := 0
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
		value = value*10 + int(r-'0')
	}
	return value, true
}

// ValidateBottleNumber reports whether a bottle number is still free.
func (a *API) ValidateBottleNumber(c *gin.Context) {
	bottleNumber := strings.TrimSpace(c.Query("bottle_number"))
	if bottleNumber == "" {
		detail(c, http.StatusBadRequest, "Query parameter 'bottle_number' is required")
		return
	}

	var exists bool
	err := a.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM chemicals WHERE bottle_number = $1)`,
		bottleNumber,
	).Scan(&exists)
	if err != nil {
		log.Printf("Error checking bottle number: %v", err)
		detail(c, http.StatusInternalServerError, "Error checking bottle number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": !exists})
}
