package users

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"connect4-agent/internals/models"

	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// SignupHandler registers a new user and seeds their ranking row.
func SignupHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "Username and password required", http.StatusBadRequest)
			return
		}

		var exists int
		if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", req.Username).Scan(&exists); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if exists > 0 {
			http.Error(w, "Username already taken", http.StatusConflict)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Error hashing password", http.StatusInternalServerError)
			return
		}
		if _, err := db.Exec("INSERT INTO users (username, password, email) VALUES (?, ?, ?)", req.Username, string(hash), req.Email); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO rankings (username, score) VALUES (?, 0)`, req.Username); err != nil {
			log.Printf("Failed to seed ranking for %s: %v", req.Username, err)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("Signup successful"))
	}
}

// LoginHandler verifies a username/password pair.
func LoginHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		var user models.User
		err := db.QueryRow("SELECT id, username, password, email FROM users WHERE username = ?", req.Username).
			Scan(&user.Id, &user.Username, &user.Password, &user.Email)
		if err == sql.ErrNoRows {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		w.Write([]byte("Login successful"))
	}
}
