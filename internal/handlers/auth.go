package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/Yashraj221B/chemical-management-backend/internal/middleware"
	"github.com/Yashraj221B/chemical-management-backend/internal/models"
	"github.com/Yashraj221B/chemical-management-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// Register handles user registration. The username and email pre-check and the
// unique indexes both guard duplicates; the indexes win under concurrency.
func (a *API) Register(c *gin.Context) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		detail(c, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	var exists bool
	err := a.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		req.Username,
		req.Email,
	).Scan(&exists)
	if err != nil {
		log.Printf("Error checking existing user: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating user")
		return
	}
	if exists {
		detail(c, http.StatusBadRequest, "User already exists")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		detail(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	var userID int
	err = a.DB.QueryRow(
		`INSERT INTO users (username, email, first_name, last_name, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		req.Username,
		req.Email,
		req.FirstName,
		req.LastName,
		passwordHash,
	).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			detail(c, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("Error inserting user: %v", err)
		detail(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User created"})
}

// Login authenticates a username/password pair and issues a bearer token.
func (a *API) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		detail(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	var user models.User
	err := a.DB.QueryRow(
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		strings.TrimSpace(req.Username),
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Error querying user: %v", err)
		detail(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		detail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		detail(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's profile.
func (a *API) Me(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	if username == "" {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	err := a.DB.QueryRow(
		`SELECT id, username, email, first_name, last_name, is_active, is_superuser, created_at, updated_at FROM users WHERE username = $1`,
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error querying user profile: %v", err)
		detail(c, http.StatusInternalServerError, "Error retrieving profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe replaces the authenticated user's profile fields.
func (a *API) UpdateMe(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	if username == "" {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		detail(c, http.StatusBadRequest, "Email is required")
		return
	}

	result, err := a.DB.Exec(
		`UPDATE users SET email = $1, first_name = $2, last_name = $3, updated_at = NOW() WHERE username = $4`,
		req.Email,
		req.FirstName,
		req.LastName,
		username,
	)
	if err != nil {
		if isUniqueViolation(err) {
			detail(c, http.StatusBadRequest, "Email already in use")
			return
		}
		log.Printf("Error updating user profile: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating profile")
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Error reading update result: %v", err)
		detail(c, http.StatusInternalServerError, "Error updating profile")
		return
	}
	if rowsAffected == 0 {
		detail(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profile updated successfully"})
}
