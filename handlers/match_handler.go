package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courtmix/americano-system/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: ms,
	}
}

// SubmitScoreHandler godoc
// @Summary Submit or overwrite a fixture score
// @Tags scores
// @Description Stores the score of one fixture. A null side marks it as not entered; the fixture only counts towards standings once both sides are present.
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param fixtureIndex path int true "Fixture index within the catalog list"
// @Param body body services.ScoreInput true "Team scores"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Negative score or unknown fixture"
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/scores/{fixtureIndex} [put]
func (h *MatchHandler) SubmitScoreHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, fixtureIndex, ok := scoreParams(w, r)
	if !ok {
		return
	}
	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.matchService.SubmitScore(r.Context(), tournamentID, fixtureIndex, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetScoreHandler godoc
// @Summary Reset a fixture to not played
// @Tags scores
// @Param id path int true "Tournament ID"
// @Param fixtureIndex path int true "Fixture index within the catalog list"
// @Success 204 "Reset"
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/scores/{fixtureIndex} [delete]
func (h *MatchHandler) ResetScoreHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, fixtureIndex, ok := scoreParams(w, r)
	if !ok {
		return
	}
	if err := h.matchService.ResetScore(r.Context(), tournamentID, fixtureIndex); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListScoresHandler godoc
// @Summary List all submitted scores of a tournament
// @Tags scores
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/scores [get]
func (h *MatchHandler) ListScoresHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := tournamentIDParam(w, r)
	if !ok {
		return
	}
	scores, err := h.matchService.ListScores(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func scoreParams(w http.ResponseWriter, r *http.Request) (tournamentID, fixtureIndex int, ok bool) {
	tournamentID, ok = tournamentIDParam(w, r)
	if !ok {
		return 0, 0, false
	}
	fixtureIndex, err := strconv.Atoi(chi.URLParam(r, "fixtureIndex"))
	if err != nil || fixtureIndex < 0 {
		badRequestResponse(w, r, errors.New("invalid fixture index"))
		return 0, 0, false
	}
	return tournamentID, fixtureIndex, true
}
