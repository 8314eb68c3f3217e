package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courtmix/americano-system/services"
)

type FormatHandler struct {
	tournamentService services.TournamentService
}

func NewFormatHandler(ts services.TournamentService) *FormatHandler {
	return &FormatHandler{
		tournamentService: ts,
	}
}

// ListFormatsHandler godoc
// @Summary List available tournament formats
// @Tags formats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /formats [get]
func (h *FormatHandler) ListFormatsHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"formats": h.tournamentService.Formats()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ValidateHandler godoc
// @Summary Validate a (player count, court count) pair
// @Tags formats
// @Description Checks whether the configuration is legal for a format without creating anything. Always returns 200 with a structured result.
// @Produce json
// @Param format query string false "Format name, defaults to americano"
// @Param players query int true "Player count"
// @Param courts query int true "Court count"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /formats/validate [get]
func (h *FormatHandler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	players, err := strconv.Atoi(r.URL.Query().Get("players"))
	if err != nil {
		badRequestResponse(w, r, errors.New("players query parameter must be an integer"))
		return
	}
	courts, err := strconv.Atoi(r.URL.Query().Get("courts"))
	if err != nil {
		badRequestResponse(w, r, errors.New("courts query parameter must be an integer"))
		return
	}

	result, err := h.tournamentService.ValidateConfiguration(r.URL.Query().Get("format"), players, courts)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"validation": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
