package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatistics returns inventory totals and a per-shelf chemical count keyed
// by shelf name.
func (a *API) GetStatistics(c *gin.Context) {
	var totalChemicals, totalShelves int64

	if err := a.DB.QueryRow(`SELECT COUNT(*) FROM chemicals`).Scan(&totalChemicals); err != nil {
		log.Printf("Error counting chemicals: %v", err)
		detail(c, http.StatusInternalServerError, "Error computing statistics")
		return
	}
	if err := a.DB.QueryRow(`SELECT COUNT(*) FROM shelves`).Scan(&totalShelves); err != nil {
		log.Printf("Error counting shelves: %v", err)
		detail(c, http.StatusInternalServerError, "Error computing statistics")
		return
	}

	rows, err := a.DB.Query(`SELECT s.name, COUNT(c.id) FROM shelves s LEFT JOIN chemicals c ON c.shelf_id = s.id GROUP BY s.id, s.name`)
	if err != nil {
		log.Printf("Error computing shelfwise counts: %v", err)
		detail(c, http.StatusInternalServerError, "Error computing statistics")
		return
	}
	defer rows.Close()

	shelfwiseCount := make(map[string]int64)
	for rows.Next() {
		var shelfName string
		var count int64
		if err := rows.Scan(&shelfName, &count); err != nil {
			log.Printf("Error scanning shelfwise count: %v", err)
			detail(c, http.StatusInternalServerError, "Error computing statistics")
			return
		}
		shelfwiseCount[shelfName] = count
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating shelfwise counts: %v", err)
		detail(c, http.StatusInternalServerError, "Error computing statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_chemicals": totalChemicals,
		"total_shelves":   totalShelves,
		"shelfwise_count": shelfwiseCount,
	})
}
