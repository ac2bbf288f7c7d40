package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/domain"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/models"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/notify"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/repository"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/pkg/payment"
)

// CallbackHandler terminates the gateway's browser return legs. The gateway
// posts (or redirects with) its result fields; the params are flattened to
// a plain string map before any verification so the signer never sees HTTP
// types.
type CallbackHandler struct {
	cfg          *config.Config
	donationRepo *repository.DonationRepository
	payu         *payment.PayUAdapter
	whatsapp     *notify.WhatsAppService
	log          *zap.Logger
}

func NewCallbackHandler(
	cfg *config.Config,
	donationRepo *repository.DonationRepository,
	payu *payment.PayUAdapter,
	whatsapp *notify.WhatsAppService,
	log *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{cfg: cfg, donationRepo: donationRepo, payu: payu, whatsapp: whatsapp, log: log}
}

// extractParams flattens query string and form-post values into one map.
// PayU form-posts the success/failure legs but GET is accepted too.
func extractParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	if err := c.Request.ParseForm(); err == nil {
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	}
	return params
}

// Success handles the gateway's success return leg. The claimed status is
// untrusted until the response hash verifies; a mismatch downgrades the
// result to verification_failed regardless of what the gateway says.
func (h *CallbackHandler) Success(c *gin.Context) {
	h.finish(c, extractParams(c))
}

// Failure handles the failure return leg. It additionally consumes the
// gateway's error token, which the classifier maps to an outcome category.
func (h *CallbackHandler) Failure(c *gin.Context) {
	h.finish(c, extractParams(c))
}

func (h *CallbackHandler) finish(c *gin.Context, params map[string]string) {
	ctx := c.Request.Context()
	res, err := h.payu.VerifyPayment(ctx, params)
	if err != nil {
		h.log.Error("callback verify error", zap.Error(err))
		h.redirectResult(c, "", payment.CategoryProcessingError)
		return
	}
	h.log.Info("gateway callback",
		zap.String("txnid", res.TxnID),
		zap.String("status", res.Status),
		zap.String("category", string(res.Category)),
	)

	d, derr := h.donationRepo.GetByTxnID(ctx, res.TxnID)
	if derr != nil {
		// No attempt on record: nothing to update, nothing to trust.
		h.log.Warn("callback for unknown txnid", zap.String("txnid", res.TxnID))
		h.redirectResult(c, res.TxnID, payment.CategoryVerificationFailed)
		return
	}

	// Amount in the callback must match the amount that was signed at
	// initiation; the hash covers it, but the donation row is the anchor.
	if res.Category == payment.CategoryCompleted && params["amount"] != d.Amount {
		h.log.Warn("callback amount mismatch",
			zap.String("txnid", res.TxnID),
			zap.String("expected", d.Amount),
		)
		res.Category = payment.CategoryVerificationFailed
	}

	switch res.Category {
	case payment.CategoryCompleted:
		if err := h.donationRepo.UpdateStatus(ctx, d.TxnID, domain.DonationStatusCompleted, "", res.GatewayRef); err != nil {
			h.log.Error("donation update failed", zap.String("txnid", d.TxnID), zap.Error(err))
		}
	case payment.CategoryPaymentCancelled:
		h.markFailed(c, d, res, domain.DonationStatusCancelled)
	default:
		h.markFailed(c, d, res, domain.DonationStatusFailed)
	}
	h.redirectResult(c, d.TxnID, res.Category)
}

func (h *CallbackHandler) markFailed(c *gin.Context, d *models.Donation, res *payment.Result, status string) {
	ctx := c.Request.Context()
	if err := h.donationRepo.UpdateStatus(ctx, d.TxnID, status, string(res.Category), res.GatewayRef); err != nil {
		h.log.Error("donation update failed", zap.String("txnid", d.TxnID), zap.Error(err))
	}
	if d.DonorPhone != "" {
		if err := h.whatsapp.NotifyPaymentFailed(d.DonorPhone, d.DonorName, d.Amount, d.Purpose, d.TxnID); err != nil {
			h.log.Warn("whatsapp alert failed", zap.String("txnid", d.TxnID), zap.Error(err))
		}
	}
}

// redirectResult sends the browser to the front end's result page with only
// safe, classified values. Raw gateway payloads never reach the user.
func (h *CallbackHandler) redirectResult(c *gin.Context, txnid string, cat payment.Category) {
	q := url.Values{}
	if txnid != "" {
		q.Set("txnid", txnid)
	}
	if cat == payment.CategoryCompleted {
		q.Set("status", "success")
	} else {
		q.Set("status", "failure")
		q.Set("reason", string(cat))
	}
	c.Redirect(http.StatusSeeOther, h.cfg.Frontend.BaseURL+"/donation/result?"+q.Encode())
}
