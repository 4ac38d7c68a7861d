package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/response"
	"egg-hunt-api/internal/service"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// SubmitCode godoc
// @Summary      Submit a secret code
// @Description  Credits the participant with the code if it is valid and not
// @Description  yet found by them
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request body dto.SubmitCodeRequest true "Submission"
// @Success      201 {object} response.SuccessResponse{data=dto.SubmitCodeResponse} "Code credited"
// @Failure      400 {object} response.ErrorResponse "Invalid code"
// @Failure      404 {object} response.ErrorResponse "Participant not found"
// @Failure      409 {object} response.ErrorResponse "Code already found"
// @Router       /submissions [post]
func (h *GameHandler) SubmitCode(c *gin.Context) {
	var req dto.SubmitCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.gameService.SubmitCode(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Leaderboard godoc
// @Summary      Current leaderboard
// @Description  Standings for every participant, sorted by codes found
// @Tags         game
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.LeaderboardResponse} "Leaderboard"
// @Router       /leaderboard [get]
func (h *GameHandler) Leaderboard(c *gin.Context) {
	leaderboard, err := h.gameService.Leaderboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, leaderboard)
}
