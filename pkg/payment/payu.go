package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PayU form/callback parameter names.
const (
	paramKey         = "key"
	paramTxnID       = "txnid"
	paramAmount      = "amount"
	paramProductInfo = "productinfo"
	paramFirstName   = "firstname"
	paramEmail       = "email"
	paramPhone       = "phone"
	paramStatus      = "status"
	paramHash        = "hash"
	paramSuccessURL  = "surl"
	paramFailureURL  = "furl"
	paramMihpayID    = "mihpayid"
)

// Hash field orders are gateway-fixed and easy to transpose between the
// request and response legs, so both are spelled out as tables. The request
// string is key|txnid|amount|productinfo|firstname|email|udf1..udf10|salt;
// the response string is the full reverse with status in place of key's
// neighbour: salt|status|udf10..udf1|email|firstname|productinfo|amount|txnid|key.
var (
	requestHashOrder = []string{
		paramKey, paramTxnID, paramAmount, paramProductInfo, paramFirstName, paramEmail,
		"udf1", "udf2", "udf3", "udf4", "udf5", "udf6", "udf7", "udf8", "udf9", "udf10",
	}
	responseHashOrder = []string{
		paramStatus,
		"udf10", "udf9", "udf8", "udf7", "udf6", "udf5", "udf4", "udf3", "udf2", "udf1",
		paramEmail, paramFirstName, paramProductInfo, paramAmount, paramTxnID, paramKey,
	}
	// Response fields that must be present for verification to even run.
	responseRequired = []string{paramStatus, paramEmail, paramFirstName, paramProductInfo, paramAmount, paramTxnID, paramKey}
)

var _ Provider = (*PayUAdapter)(nil)

// PayUAdapter signs outbound requests and verifies inbound callbacks for
// PayU hosted checkout.
type PayUAdapter struct {
	MerchantKey string
	BaseURL     string
	SuccessURL  string
	FailureURL  string

	salt string
}

func NewPayUAdapter(merchantKey, salt, baseURL, successURL, failureURL string) *PayUAdapter {
	return &PayUAdapter{
		MerchantKey: merchantKey,
		BaseURL:     baseURL,
		SuccessURL:  successURL,
		FailureURL:  failureURL,
		salt:        salt,
	}
}

// CanonicalAmount renders an amount as the fixed two-decimal string the
// gateway expects. The same string must be signed and sent: a formatting
// drift between the two is a signing bug, not a gateway error.
func CanonicalAmount(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() || d.IsZero() {
		return "", fmt.Errorf("amount must be positive, got %q", s)
	}
	return d.StringFixed(2), nil
}

// ComputeRequestHash builds the lowercase hex SHA-512 request signature
// over the pipe-joined request field order plus the salt. Unset udf slots
// contribute empty strings.
func ComputeRequestHash(fields map[string]string, salt string) string {
	parts := make([]string, 0, len(requestHashOrder)+1)
	for _, name := range requestHashOrder {
		parts = append(parts, fields[name])
	}
	parts = append(parts, salt)
	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// VerifyResponseHash rebuilds the expected callback signature using the
// gateway's reversed field order and compares it against receivedHash in
// constant time. Any missing required field or malformed hash yields false;
// it never panics on bad input. A mismatch means the claimed status cannot
// be trusted, whatever it says.
func VerifyResponseHash(fields map[string]string, salt, receivedHash string) bool {
	receivedHash = strings.ToLower(strings.TrimSpace(receivedHash))
	if len(receivedHash) != sha512.Size*2 {
		return false
	}
	if _, err := hex.DecodeString(receivedHash); err != nil {
		return false
	}
	for _, name := range responseRequired {
		if fields[name] == "" {
			return false
		}
	}
	parts := make([]string, 0, len(responseHashOrder)+1)
	parts = append(parts, salt)
	for _, name := range responseHashOrder {
		parts = append(parts, fields[name])
	}
	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(receivedHash)) == 1
}

// InitiatePayment builds the signed form payload for the browser hand-off.
func (a *PayUAdapter) InitiatePayment(_ context.Context, req Request) (*Form, error) {
	if req.TxnID == "" {
		return nil, fmt.Errorf("txnid is required")
	}
	amount, err := CanonicalAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	fields := map[string]string{
		paramKey:         a.MerchantKey,
		paramTxnID:       req.TxnID,
		paramAmount:      amount,
		paramProductInfo: req.ProductInfo,
		paramFirstName:   req.FirstName,
		paramEmail:       req.Email,
		paramSuccessURL:  a.SuccessURL,
		paramFailureURL:  a.FailureURL,
	}
	if req.Phone != "" {
		fields[paramPhone] = req.Phone
	}
	fields[paramHash] = ComputeRequestHash(fields, a.salt)
	return &Form{ActionURL: a.BaseURL, Fields: fields}, nil
}

// VerifyPayment validates a callback param map. The outcome is trusted only
// when the hash verifies; otherwise the result is verification_failed no
// matter what status the gateway claims.
func (a *PayUAdapter) VerifyPayment(_ context.Context, params map[string]string) (*Result, error) {
	res := &Result{
		TxnID:      params[paramTxnID],
		Status:     params[paramStatus],
		GatewayRef: params[paramMihpayID],
	}
	if !VerifyResponseHash(params, a.salt, params[paramHash]) {
		res.Category = CategoryVerificationFailed
		return res, nil
	}
	if strings.EqualFold(res.Status, "success") {
		res.Category = CategoryCompleted
		return res, nil
	}
	res.Category = Classify(params["error"])
	if res.Category == CategoryUnknown {
		res.Category = Classify(res.Status)
	}
	return res, nil
}
