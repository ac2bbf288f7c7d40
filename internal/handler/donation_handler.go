package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/domain"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/models"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/repository"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/pkg/payment"
)

type DonationHandler struct {
	donationRepo *repository.DonationRepository
	payu         *payment.PayUAdapter
	log          *zap.Logger
}

func NewDonationHandler(donationRepo *repository.DonationRepository, payu *payment.PayUAdapter, log *zap.Logger) *DonationHandler {
	return &DonationHandler{donationRepo: donationRepo, payu: payu, log: log}
}

type initiateRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Purpose   string `json:"purpose" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// Initiate creates a PENDING donation attempt and returns the signed PayU
// form payload for the browser hand-off. The txnid is generated here and
// frozen: every signed field, amount included, is persisted exactly as sent.
func (h *DonationHandler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := payment.CanonicalAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txnid := fmt.Sprintf("don-%s", uuid.New().String())

	d := &models.Donation{
		TxnID:      txnid,
		Amount:     amount,
		Currency:   domain.CurrencyINR,
		Purpose:    req.Purpose,
		DonorName:  req.FirstName,
		DonorEmail: req.Email,
		DonorPhone: req.Phone,
		Method:     domain.PaymentMethodPayU,
		Status:     domain.DonationStatusPending,
	}
	if err := h.donationRepo.Create(c.Request.Context(), d); err != nil {
		h.log.Error("donation create failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "donation create failed"})
		return
	}

	form, err := h.payu.InitiatePayment(c.Request.Context(), payment.Request{
		TxnID:       txnid,
		Amount:      amount,
		ProductInfo: req.Purpose,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		h.log.Error("payu initiate failed", zap.String("txnid", txnid), zap.Error(err))
		_ = h.donationRepo.UpdateStatus(c.Request.Context(), txnid, domain.DonationStatusFailed, string(payment.CategoryProcessingError), "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment initiation failed"})
		return
	}
	h.log.Info("donation initiated",
		zap.String("txnid", txnid),
		zap.String("amount", amount),
		zap.String("purpose", req.Purpose),
	)
	c.JSON(http.StatusCreated, gin.H{
		"txnid":      txnid,
		"action_url": form.ActionURL,
		"fields":     form.Fields,
	})
}

// GetByTxnID is the front-end result page's status lookup.
func (h *DonationHandler) GetByTxnID(c *gin.Context) {
	txnid := c.Param("txnid")
	d, err := h.donationRepo.GetByTxnID(c.Request.Context(), txnid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}
	resp := gin.H{
		"txnid":   d.TxnID,
		"status":  d.Status,
		"amount":  d.Amount,
		"purpose": d.Purpose,
	}
	if d.Outcome != "" {
		cat, _ := payment.ParseCategory(d.Outcome)
		resp["outcome"] = d.Outcome
		resp["description"] = payment.Describe(cat)
	}
	c.JSON(http.StatusOK, resp)
}

// DescribeOutcome exposes the fixed outcome copy the result page renders.
func (h *DonationHandler) DescribeOutcome(c *gin.Context) {
	cat, ok := payment.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown outcome category"})
		return
	}
	c.JSON(http.StatusOK, payment.Describe(cat))
}
