package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIntentURI(t *testing.T) {
	a := NewUPIAdapter("temple@sbi", "ISKCON Juhu", "")
	uri, err := a.BuildIntentURI("", "don-123", "500", "Annadana Seva")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "upi://pay?"))

	q, err := url.ParseQuery(strings.TrimPrefix(uri, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "temple@sbi", q.Get("pa"))
	assert.Equal(t, "ISKCON Juhu", q.Get("pn"))
	assert.Equal(t, "don-123", q.Get("tr"))
	assert.Equal(t, "500.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Annadana Seva", q.Get("tn"))
}

func TestBuildIntentURIEncodesSpecialTxnID(t *testing.T) {
	a := NewUPIAdapter("temple@sbi", "ISKCON Juhu", "")
	txnid := "don 1&x=2"
	uri, err := a.BuildIntentURI("", txnid, "100.00", "")
	require.NoError(t, err)

	q, err := url.ParseQuery(strings.TrimPrefix(uri, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, txnid, q.Get("tr"), "txnid must round-trip through percent-encoding")
}

func TestBuildIntentURIPayeeOverrideAndDefaults(t *testing.T) {
	a := NewUPIAdapter("temple@sbi", "ISKCON Juhu", "")
	uri, err := a.BuildIntentURI("other@upi", "don-1", "10", "")
	require.NoError(t, err)
	q, _ := url.ParseQuery(strings.TrimPrefix(uri, "upi://pay?"))
	assert.Equal(t, "other@upi", q.Get("pa"))

	empty := NewUPIAdapter("", "ISKCON Juhu", "")
	_, err = empty.BuildIntentURI("", "don-1", "10", "")
	assert.Error(t, err, "no payee address configured anywhere")

	_, err = a.BuildIntentURI("", "", "10", "")
	assert.Error(t, err, "missing txnid")
	_, err = a.BuildIntentURI("", "don-1", "free", "")
	assert.Error(t, err, "bad amount")
}

func TestQRDataURL(t *testing.T) {
	qr, err := QRDataURL("upi://pay?pa=temple@sbi&am=100.00")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))

	// Past QR capacity: an error, never a partial image.
	_, err = QRDataURL(strings.Repeat("x", 5000))
	assert.Error(t, err)
}

func TestUPIVerifyPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("txnid") {
		case "don-ok":
			w.Write([]byte(`{"txnid":"don-ok","status":"SUCCESS","reference":"UPI123"}`))
		case "don-cancel":
			w.Write([]byte(`{"txnid":"don-cancel","status":"cancelled"}`))
		default:
			w.Write([]byte(`{"status":"pending"}`))
		}
	}))
	defer srv.Close()

	a := NewUPIAdapter("temple@sbi", "ISKCON Juhu", srv.URL)

	res, err := a.VerifyPayment(context.Background(), map[string]string{"txnid": "don-ok"})
	require.NoError(t, err)
	assert.Equal(t, CategoryCompleted, res.Category)
	assert.Equal(t, "UPI123", res.GatewayRef)

	res, err = a.VerifyPayment(context.Background(), map[string]string{"txnid": "don-cancel"})
	require.NoError(t, err)
	assert.Equal(t, CategoryPaymentCancelled, res.Category)

	res, err = a.VerifyPayment(context.Background(), map[string]string{"txnid": "don-wait"})
	require.NoError(t, err)
	assert.Equal(t, CategoryProcessingError, res.Category)
}

func TestUPIVerifyPaymentErrors(t *testing.T) {
	a := NewUPIAdapter("temple@sbi", "ISKCON Juhu", "")
	_, err := a.VerifyPayment(context.Background(), map[string]string{"txnid": "don-1"})
	assert.Error(t, err, "unconfigured status endpoint must fail, not guess")

	_, err = a.VerifyPayment(context.Background(), map[string]string{})
	assert.Error(t, err, "missing txnid")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	b := NewUPIAdapter("temple@sbi", "ISKCON Juhu", srv.URL)
	_, err = b.VerifyPayment(context.Background(), map[string]string{"txnid": "don-1"})
	assert.Error(t, err)
}
