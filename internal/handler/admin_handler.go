package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/auth"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/repository"
)

type AdminHandler struct {
	cfg          *config.Config
	userRepo     *repository.UserRepository
	donationRepo *repository.DonationRepository
	log          *zap.Logger
}

func NewAdminHandler(cfg *config.Config, userRepo *repository.UserRepository, donationRepo *repository.DonationRepository, log *zap.Logger) *AdminHandler {
	return &AdminHandler{cfg: cfg, userRepo: userRepo, donationRepo: donationRepo, log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := auth.GenerateAccessToken(&h.cfg.JWT, u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "role": u.Role})
}

// ListDonations returns donations newest first, filterable by status.
func (h *AdminHandler) ListDonations(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if offset < 0 {
		offset = 0
	}
	donations, err := h.donationRepo.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		h.log.Error("donation list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations, "count": len(donations)})
}

func (h *AdminHandler) GetDonation(c *gin.Context) {
	d, err := h.donationRepo.GetByTxnID(c.Request.Context(), c.Param("txnid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}
