// Package handlers provides the HTTP handlers for the combiner API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ulagbulag/string-combiner/internal/segment"
	"github.com/ulagbulag/string-combiner/internal/stats"
	"github.com/ulagbulag/string-combiner/pkg/combiner"
)

// CombineRequest represents a string combine request.
type CombineRequest struct {
	Inputs []string `json:"inputs"`

	// Optional overrides; nil keeps the defaults.
	GapOpen            *int  `json:"gap_open,omitempty"`
	GapExtend          *int  `json:"gap_extend,omitempty"`
	ThresholdDeletionX *int  `json:"threshold_deletion_x,omitempty"`
	ThresholdDeletionY *int  `json:"threshold_deletion_y,omitempty"`
	AllowTokenDeletion *bool `json:"allow_token_deletion,omitempty"`
}

// CombineResponse represents the response for a string combine.
type CombineResponse struct {
	Output   string `json:"output"`
	Combined bool   `json:"combined"`
}

func (req *CombineRequest) combiner() *combiner.Combiner {
	c := combiner.Default()
	if req.GapOpen != nil {
		c.GapOpen = *req.GapOpen
	}
	if req.GapExtend != nil {
		c.GapExtend = *req.GapExtend
	}
	if req.ThresholdDeletionX != nil {
		c.ThresholdDeletionX = *req.ThresholdDeletionX
	}
	if req.ThresholdDeletionY != nil {
		c.ThresholdDeletionY = *req.ThresholdDeletionY
	}
	if req.AllowTokenDeletion != nil {
		c.AllowTokenDeletion = *req.AllowTokenDeletion
	}
	return c
}

// CombineStringsHandler combines a list of transcript strings.
func CombineStringsHandler(w http.ResponseWriter, r *http.Request) {
	var req CombineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	output, ok := req.combiner().ConcatStrings(req.Inputs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CombineResponse{Output: output, Combined: ok})
}

// SegmentResponse represents a combined segment.
type SegmentResponse struct {
	Key      segment.Key `json:"key"`
	Text     string      `json:"text"`
	Combined bool        `json:"combined"`
}

// CombineSegmentsHandler combines a JSON array of wire segments by
// their decoded text.
func CombineSegmentsHandler(w http.ResponseWriter, r *http.Request) {
	segments, err := segment.Parse(r.Body)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	combined, ok := combiner.Default().ConcatSegmentTexts(segments)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SegmentResponse{
		Key:      combined.Key,
		Text:     combined.Value,
		Combined: ok,
	})
}

// StatsResponse represents statistics over a combined result.
type StatsResponse struct {
	Tokens       int     `json:"tokens"`
	TotalMatched int     `json:"total_matched"`
	MeanSupport  float64 `json:"mean_support"`
	MinSupport   int     `json:"min_support"`
	MaxSupport   int     `json:"max_support"`
	NumDeletedX  int     `json:"num_deleted_x"`
	NumDeletedY  int     `json:"num_deleted_y"`
}

// CombineStatsHandler combines the inputs and reports support
// statistics for the consolidated sequence.
func CombineStatsHandler(w http.ResponseWriter, r *http.Request) {
	var req CombineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seq, ok := req.combiner().ConsolidateRunes(req.Inputs)
	if !ok {
		http.Error(w, `{"error": "no inputs"}`, http.StatusBadRequest)
		return
	}

	st := stats.FromSequence(seq)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		Tokens:       st.Tokens,
		TotalMatched: st.TotalMatched,
		MeanSupport:  st.MeanSupport,
		MinSupport:   st.MinSupport,
		MaxSupport:   st.MaxSupport,
		NumDeletedX:  st.NumDeletedX,
		NumDeletedY:  st.NumDeletedY,
	})
}
