package handler

import (
	"fmt"
	"net/http"
	"strings"

	"booking-api/internal/token"
)

func (h *Handler) GenerateToken(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	phone := q.Get("phone")
	if phone == "" {
		return badRequest("phone query parameter is required")
	}

	tok, err := h.tokens.Issue(token.Identity{Phone: phone, Name: q.Get("name")})
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
	return nil
}

// ValidateToken accepts the token as a query parameter or a bearer header.
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) error {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			raw = strings.TrimPrefix(ah, "Bearer ")
		}
	}
	if raw == "" {
		return badRequest("token is required")
	}

	id, err := h.tokens.Redeem(raw)
	if err != nil {
		return err
	}

	resp := map[string]string{"phone": id.Phone}
	if id.Name != "" {
		resp["name"] = id.Name
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}
