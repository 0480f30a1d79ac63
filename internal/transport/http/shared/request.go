package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

// Decode reads a JSON body into dst and answers 400 when it cannot.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		failDecode(w, r, err)
		return false
	}
	return true
}

// DecodeOptional is Decode for requests whose body may be empty, such as a
// DELETE that names its record in the path.
func DecodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		failDecode(w, r, err)
		return false
	}
	return true
}

func failDecode(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
		return
	}
	api.FailWithDetails(w, http.StatusBadRequest, "invalid_payload", "invalid request payload",
		map[string]string{"reason": err.Error()}, reqID)
}

// PathOrBody returns the chi URL parameter when present, else the body value.
func PathOrBody(r *http.Request, param, bodyValue string) string {
	if v := strings.TrimSpace(chi.URLParam(r, param)); v != "" {
		return v
	}
	return strings.TrimSpace(bodyValue)
}

// QueryInt parses an optional integer query parameter. A blank value is 0.
func QueryInt(r *http.Request, name string, v *Validator) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(name, "must be an integer")
		return 0
	}
	return n
}

func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
