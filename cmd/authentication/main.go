// This is a **mock authentication service**, designed to provide JWT tokens
// for the registry service, simulating console sign-in for a given role.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/auth"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler generates a JWT for the requested role and returns it in a
// JSON response. The role query parameter defaults to CEO.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		role = string(models.CEO)
	}
	if !models.Role(role).Valid() {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	// Simulate a user ID for the token
	userID := "12345"

	token, err := auth.GenerateToken(userID, role, secret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{Token: token}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		http.Error(w, "Failed to encode token", http.StatusInternalServerError)
	}
}

func main() {
	// TODO: move to env or config
	port := defaultPort
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Authentication service running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
