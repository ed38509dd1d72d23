package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"digiplot/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// decodeBody answers Fail itself and returns false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := readBodyJSON(r, maxBodyBytes, out); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid request body"))
		return false
	}
	return true
}

// pathID reads the {id} wildcard. It answers Fail itself when the id is malformed.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusOK, Fail("invalid id"))
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter, kind string) {
	writeJSON(w, http.StatusOK, Fail(kind+" not found"))
}

// writeServiceError maps service errors onto the envelope. Validation and
// credential problems are the caller's fault and carry their own message;
// anything else is logged and hidden.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusOK, Fail(err.Error()))
	default:
		logger.Error(op+" failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("internal server error"))
	}
}
