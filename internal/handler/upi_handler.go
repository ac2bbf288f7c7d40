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

type UPIHandler struct {
	donationRepo *repository.DonationRepository
	upi          *payment.UPIAdapter
	log          *zap.Logger
}

func NewUPIHandler(donationRepo *repository.DonationRepository, upi *payment.UPIAdapter, log *zap.Logger) *UPIHandler {
	return &UPIHandler{donationRepo: donationRepo, upi: upi, log: log}
}

type upiInitiateRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Purpose   string `json:"purpose" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// Initiate creates a PENDING donation attempt paid over UPI and returns
// the deep link plus its QR image. The intent itself is ephemeral; only the
// attempt is persisted.
func (h *UPIHandler) Initiate(c *gin.Context) {
	var req upiInitiateRequest
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
		Method:     domain.PaymentMethodUPI,
		Status:     domain.DonationStatusPending,
	}
	if err := h.donationRepo.Create(c.Request.Context(), d); err != nil {
		h.log.Error("donation create failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "donation create failed"})
		return
	}
	uri, err := h.upi.BuildIntentURI("", txnid, amount, req.Purpose)
	if err != nil {
		h.log.Error("upi intent build failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "intent build failed"})
		return
	}
	qr, err := payment.QRDataURL(uri)
	if err != nil {
		h.log.Error("qr encode failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	h.log.Info("upi donation initiated", zap.String("txnid", txnid), zap.String("amount", amount))
	c.JSON(http.StatusCreated, gin.H{
		"txnid":  txnid,
		"intent": uri,
		"qr":     qr,
	})
}

// Intent returns the upi:// deep link and its QR image for a donation
// attempt. The attempt must already exist; the amount comes from the stored
// row so the intent always matches what was recorded.
func (h *UPIHandler) Intent(c *gin.Context) {
	txnid := c.Query("txnid")
	if txnid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "txnid is required"})
		return
	}
	d, err := h.donationRepo.GetByTxnID(c.Request.Context(), txnid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}
	uri, err := h.upi.BuildIntentURI(c.Query("pa"), d.TxnID, d.Amount, d.Purpose)
	if err != nil {
		h.log.Error("upi intent build failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "intent build failed"})
		return
	}
	qr, err := payment.QRDataURL(uri)
	if err != nil {
		h.log.Error("qr encode failed", zap.String("txnid", txnid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"txnid":  d.TxnID,
		"intent": uri,
		"qr":     qr,
	})
}

type upiVerifyRequest struct {
	TxnID string `json:"txnid" binding:"required"`
}

// Verify polls the UPI provider for the transaction status and records the
// classified outcome. A poll failure is a verification failure, not a
// success and not a crash.
func (h *UPIHandler) Verify(c *gin.Context) {
	var req upiVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	d, err := h.donationRepo.GetByTxnID(ctx, req.TxnID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}
	if d.Status == domain.DonationStatusCompleted {
		c.JSON(http.StatusOK, gin.H{
			"txnid":       d.TxnID,
			"status":      d.Status,
			"description": payment.Describe(payment.CategoryCompleted),
		})
		return
	}
	res, err := h.upi.VerifyPayment(ctx, map[string]string{"txnid": req.TxnID})
	if err != nil {
		h.log.Warn("upi verify failed", zap.String("txnid", req.TxnID), zap.Error(err))
		res = &payment.Result{TxnID: req.TxnID, Category: payment.CategoryVerificationFailed}
	}
	var status string
	switch res.Category {
	case payment.CategoryCompleted:
		status = domain.DonationStatusCompleted
		if err := h.donationRepo.UpdateStatus(ctx, d.TxnID, status, "", res.GatewayRef); err != nil {
			h.log.Error("donation update failed", zap.String("txnid", d.TxnID), zap.Error(err))
		}
	case payment.CategoryProcessingError:
		// still in flight: leave the row PENDING
		status = d.Status
	case payment.CategoryPaymentCancelled:
		status = domain.DonationStatusCancelled
		if err := h.donationRepo.UpdateStatus(ctx, d.TxnID, status, string(res.Category), res.GatewayRef); err != nil {
			h.log.Error("donation update failed", zap.String("txnid", d.TxnID), zap.Error(err))
		}
	default:
		status = domain.DonationStatusFailed
		if err := h.donationRepo.UpdateStatus(ctx, d.TxnID, status, string(res.Category), res.GatewayRef); err != nil {
			h.log.Error("donation update failed", zap.String("txnid", d.TxnID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"txnid":       d.TxnID,
		"status":      status,
		"outcome":     string(res.Category),
		"description": payment.Describe(res.Category),
	})
}
