package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"egg-hunt-api/internal/dto"
	"egg-hunt-api/internal/response"
	"egg-hunt-api/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
	gameService  service.GameService
}

func NewAdminHandler(adminService service.AdminService, gameService service.GameService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		gameService:  gameService,
	}
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges the admin password for a session token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.AdminLoginRequest true "Login request"
// @Success      200 {object} response.SuccessResponse{data=dto.AdminLoginResponse} "Token issued"
// @Failure      401 {object} response.ErrorResponse "Invalid password"
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.adminService.Login(c.Request.Context(), req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListCodes godoc
// @Summary      List all secret codes
// @Description  Returns the full catalog including values, oldest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.SecretCodeResponse} "Catalog"
// @Router       /admin/codes [get]
func (h *AdminHandler) ListCodes(c *gin.Context) {
	codes, err := h.adminService.ListCodes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, codes)
}

// UpdateCode godoc
// @Summary      Replace a secret code's value
// @Description  Applies the same normalization as submissions
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateCodeRequest true "Update request"
// @Success      200 {object} response.SuccessResponse{data=dto.SecretCodeResponse} "Code updated"
// @Failure      400 {object} response.ErrorResponse "Empty value"
// @Failure      404 {object} response.ErrorResponse "Code not found"
// @Router       /admin/update-code [post]
func (h *AdminHandler) UpdateCode(c *gin.Context) {
	var req dto.UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	code, err := h.adminService.UpdateCode(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, code)
}

// Seed godoc
// @Summary      Reseed the catalog
// @Description  Atomically replaces every code (and clears the ledger);
// @Description  omit codes to install the defaults
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SeedRequest false "Seed request"
// @Success      200 {object} response.SuccessResponse{data=[]dto.SecretCodeResponse} "New catalog"
// @Router       /admin/seed [post]
func (h *AdminHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
	}

	codes, err := h.adminService.Seed(c.Request.Context(), req.Codes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, codes)
}

// ResetGame godoc
// @Summary      Reset the game
// @Description  Deletes every found record; participants and codes remain
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse "Game reset"
// @Router       /admin/reset-game [post]
func (h *AdminHandler) ResetGame(c *gin.Context) {
	if err := h.adminService.ResetGame(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Game reset successfully"})
}

// ResetAll godoc
// @Summary      Full reset
// @Description  Deletes every found record and then every participant;
// @Description  codes remain
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse "All reset"
// @Router       /admin/reset-all [post]
func (h *AdminHandler) ResetAll(c *gin.Context) {
	if err := h.adminService.ResetAll(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "All participants and progress reset successfully"})
}

// Progress godoc
// @Summary      Participant progress overview
// @Description  Leaderboard rows for the admin progress table
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.LeaderboardResponse} "Progress"
// @Router       /admin/progress [get]
func (h *AdminHandler) Progress(c *gin.Context) {
	leaderboard, err := h.gameService.Leaderboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, leaderboard)
}
