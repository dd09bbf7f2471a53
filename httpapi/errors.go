package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/trezcool/klabu/core"
)

// errorBody is the backend's error envelope: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// mapStatusError converts a failing status into the core error taxonomy.
// Login-specific mapping (400/401/403 folded together) happens in auth.go;
// this is the general protected-endpoint mapping.
func mapStatusError(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return core.ErrAuthRequired
	case http.StatusForbidden:
		return core.ErrPermissionDenied
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusConflict:
		return core.ErrConflict
	}
	return core.NewServerError(status, errorMessage(status, body))
}

func errorMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return http.StatusText(status)
}
