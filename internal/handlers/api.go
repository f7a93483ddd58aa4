package handlers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Yashraj221B/chemical-management-backend/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// API bundles the store handle shared by every HTTP handler. Handlers hold no
// other state; each request is a single stateless call against the store.
type API struct {
	DB         *sql.DB
	Monitoring *monitoring.Service
}

func NewAPI(db *sql.DB, mon *monitoring.Service) *API {
	if mon == nil {
		mon = monitoring.NewService(db, time.Now())
	}
	return &API{DB: db, Monitoring: mon}
}

// detail writes the error body shape shared by every endpoint.
func detail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Duplicate bottle numbers, usernames and emails surface this way
// when two concurrent requests pass the application pre-check together.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
