package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

var _ Provider = (*UPIAdapter)(nil)

// UPIAdapter builds upi:// deep-link intents and verifies transactions
// against the provider's status endpoint.
type UPIAdapter struct {
	PayeeAddress string
	PayeeName    string
	StatusURL    string

	client *http.Client
}

func NewUPIAdapter(payeeAddress, payeeName, statusURL string) *UPIAdapter {
	return &UPIAdapter{
		PayeeAddress: payeeAddress,
		PayeeName:    payeeName,
		StatusURL:    statusURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// BuildIntentURI renders a upi://pay deep link. An empty payeeAddress falls
// back to the configured one. The amount is a plain decimal string; txnid
// and note are percent-encoded so the URI parses back to the same values.
func (a *UPIAdapter) BuildIntentURI(payeeAddress, txnid, amount, note string) (string, error) {
	if payeeAddress == "" {
		payeeAddress = a.PayeeAddress
	}
	if payeeAddress == "" {
		return "", fmt.Errorf("no payee address configured")
	}
	if txnid == "" {
		return "", fmt.Errorf("txnid is required")
	}
	amt, err := CanonicalAmount(amount)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("pa", payeeAddress)
	q.Set("pn", a.PayeeName)
	q.Set("tr", txnid)
	q.Set("am", amt)
	q.Set("cu", "INR")
	if note != "" {
		q.Set("tn", note)
	}
	return "upi://pay?" + q.Encode(), nil
}

// QRDataURL encodes the intent URI as a PNG data URL. Encoding failures
// (e.g. input over QR capacity) return an error, never a partial image.
func QRDataURL(uri string) (string, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("qr encode: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// InitiatePayment returns the intent as a pseudo-form so the adapter fits
// the Provider surface; the front end opens the URI instead of posting it.
func (a *UPIAdapter) InitiatePayment(_ context.Context, req Request) (*Form, error) {
	uri, err := a.BuildIntentURI("", req.TxnID, req.Amount, req.ProductInfo)
	if err != nil {
		return nil, err
	}
	return &Form{ActionURL: uri, Fields: map[string]string{}}, nil
}

type upiStatusResponse struct {
	TxnID     string `json:"txnid"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

// VerifyPayment polls the provider status endpoint for the transaction.
// There is no guessing here: without a configured endpoint the call fails
// outright and the caller treats it as verification_failed.
func (a *UPIAdapter) VerifyPayment(ctx context.Context, params map[string]string) (*Result, error) {
	txnid := params[paramTxnID]
	if txnid == "" {
		return nil, fmt.Errorf("txnid is required")
	}
	if a.StatusURL == "" {
		return nil, fmt.Errorf("upi status endpoint not configured")
	}
	u, err := url.Parse(a.StatusURL)
	if err != nil {
		return nil, fmt.Errorf("upi status url: %w", err)
	}
	q := u.Query()
	q.Set("txnid", txnid)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upi status poll: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upi status poll: %d", resp.StatusCode)
	}
	var out upiStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upi status decode: %w", err)
	}
	res := &Result{TxnID: txnid, Status: out.Status, GatewayRef: out.Reference}
	if strings.EqualFold(out.Status, "success") {
		res.Category = CategoryCompleted
	} else {
		res.Category = Classify(out.Status)
	}
	return res, nil
}
