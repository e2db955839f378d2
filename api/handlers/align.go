package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ulagbulag/string-combiner/internal/align"
	"github.com/ulagbulag/string-combiner/pkg/combiner"
)

// AlignRequest represents a pairwise alignment request.
type AlignRequest struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Mode string `json:"mode,omitempty"`
	Ncol int    `json:"ncol,omitempty"`
}

// AlignResponse represents a rendered pairwise alignment.
type AlignResponse struct {
	Pretty string `json:"pretty"`
	Mode   string `json:"mode"`
}

// PrettyAlignHandler renders the alignment of two strings as a
// three-row diff.
func PrettyAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	mode := align.Local
	switch req.Mode {
	case "", "local":
	case "global":
		mode = align.Global
	case "semiglobal":
		mode = align.Semiglobal
	default:
		http.Error(w, `{"error": "unknown mode: `+req.Mode+`"}`, http.StatusBadRequest)
		return
	}

	ncol := req.Ncol
	if ncol <= 0 {
		ncol = 80
	}

	pretty := combiner.Default().PrettyAlign(mode, req.X, req.Y, ncol)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlignResponse{Pretty: pretty, Mode: mode.String()})
}
