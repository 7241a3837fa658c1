package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/creditwise/internal/logging"
)

// ModelState tells which trained models the server loaded.
type ModelState struct {
	CategoryModel bool `json:"categoryModel"`
	DefaultModel  bool `json:"defaultModel"`
}

type statusBody struct {
	Status   string     `json:"status"`
	Degraded bool       `json:"degraded"`
	Models   ModelState `json:"models"`
}

type Handler struct {
	Models ModelState
}

func NewHandler(models ModelState) Handler {
	return Handler{Models: models}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	body := statusBody{
		Status:   "ok",
		Degraded: !h.Models.CategoryModel || !h.Models.DefaultModel,
		Models:   h.Models,
	}
	logData.AddData("degraded", body.Degraded)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(body)
}
