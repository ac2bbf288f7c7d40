package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
)

// WhatsAppService sends donor alerts over Twilio's WhatsApp API. A nil
// service is safe to call and does nothing, mirroring the unconfigured case.
type WhatsAppService struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

// NewWhatsAppService returns nil when credentials are missing; callers
// treat nil as notifications-disabled.
func NewWhatsAppService(cfg config.WhatsAppConfig, log *zap.Logger) *WhatsAppService {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &WhatsAppService{client: client, from: cfg.FromNumber, log: log}
}

// NotifyPaymentFailed messages the donor that an attempt did not complete.
// Invalid numbers abort the send and report failure; there is no retry.
func (s *WhatsAppService) NotifyPaymentFailed(phone, donorName, amount, purpose, txnid string) error {
	if s == nil {
		return nil
	}
	to, err := NormalizePhone(phone)
	if err != nil {
		return fmt.Errorf("whatsapp send aborted: %w", err)
	}
	body := fmt.Sprintf(
		"Hare Krishna %s, your donation of ₹%s towards %s (ref %s) could not be completed. No amount was charged. You can retry from the donations page or reply here for help.",
		donorName, amount, purpose, txnid,
	)
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom(s.from)
	params.SetBody(body)
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	s.log.Info("whatsapp failure alert sent", zap.String("txnid", txnid))
	return nil
}
