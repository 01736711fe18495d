package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alphasourceai/upload-portal/internal/domain"
)

// DataEnvelope is the success wrapper for every portal response.
type DataEnvelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the failure wrapper. Code is one of the portal's
// closed error codes.
type ErrorEnvelope struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

func writeData(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(DataEnvelope{OK: true, Data: v})
}

// writeError maps a portal error onto its wire form. Anything outside the
// closed set collapses to server_error so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.ErrServer
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(derr.Status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error:  derr.Message,
		Code:   derr.Code,
		Detail: derr.Detail,
	})
}
