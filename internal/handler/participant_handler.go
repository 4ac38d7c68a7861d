package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/response"
	"egg-hunt-api/internal/service"
)

type ParticipantHandler struct {
	registryService service.RegistryService
	gameService     service.GameService
}

func NewParticipantHandler(registryService service.RegistryService, gameService service.GameService) *ParticipantHandler {
	return &ParticipantHandler{
		registryService: registryService,
		gameService:     gameService,
	}
}

// Register godoc
// @Summary      Register a participant
// @Description  Creates a participant with a unique username
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration request"
// @Success      201 {object} response.SuccessResponse{data=dto.ParticipantResponse} "Participant created"
// @Failure      400 {object} response.ErrorResponse "Empty username"
// @Failure      409 {object} response.ErrorResponse "Username already taken"
// @Router       /participants [post]
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	participant, err := h.registryService.Register(c.Request.Context(), req.Username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, participant)
}

// Lookup godoc
// @Summary      Look up a participant
// @Description  Finds a participant by exact username
// @Tags         participants
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} response.SuccessResponse{data=dto.ParticipantResponse} "Participant found"
// @Failure      404 {object} response.ErrorResponse "Participant not found"
// @Router       /participants/{username} [get]
func (h *ParticipantHandler) Lookup(c *gin.Context) {
	participant, err := h.registryService.Lookup(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, participant)
}

// Progress godoc
// @Summary      A participant's progress
// @Description  Returns the participant's found code values and standing
// @Tags         participants
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} response.SuccessResponse{data=dto.ProgressResponse} "Progress"
// @Failure      404 {object} response.ErrorResponse "Participant not found"
// @Router       /participants/{username}/progress [get]
func (h *ParticipantHandler) Progress(c *gin.Context) {
	participant, err := h.registryService.Lookup(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	progress, err := h.gameService.Progress(c.Request.Context(), participant.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, progress)
}
