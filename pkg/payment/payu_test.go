package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalt = "S"

// Known-answer vectors generated once from the documented field orders.
const (
	knownRequestHash         = "2ee4d57fa2bb68f34769195fab889ae43bfdaaa9353c97a0567bf9d94e471d2299cd4b714ac5b5082c743edd391206bf5318f6ea472b73a3e2e0ff6063bc25c7"
	knownSuccessResponseHash = "87d723945810d56b6d0fe282e1981c97c5a66c38e57c5261cbcd4edd6daf7dfa134a498c4c5874c9b14019d9077e1750f2ae3f3675cfcd1bc03fd7f1048516be"
	knownFailureResponseHash = "8d7274ebdb092c6e150a0a7569829f546dd1446dfb44549e4188dd21c0cdd147878ce50e8b7e70ae613338148355d5cecc57e1a1c8d23a194e3c717f750a2da8"
)

func requestFields() map[string]string {
	return map[string]string{
		"key":         "K",
		"txnid":       "TXN1",
		"amount":      "100.00",
		"productinfo": "Donation",
		"firstname":   "A",
		"email":       "a@b.com",
	}
}

func responseFields(status string) map[string]string {
	f := requestFields()
	f["status"] = status
	return f
}

func TestComputeRequestHashKnownVector(t *testing.T) {
	got := ComputeRequestHash(requestFields(), testSalt)
	assert.Equal(t, knownRequestHash, got)
	assert.Equal(t, strings.ToLower(got), got, "hash must be lowercase hex")
}

func TestVerifyResponseHashRoundTrip(t *testing.T) {
	assert.True(t, VerifyResponseHash(responseFields("success"), testSalt, knownSuccessResponseHash))
	assert.True(t, VerifyResponseHash(responseFields("failure"), testSalt, knownFailureResponseHash))
}

func TestVerifyResponseHashRejectsMutatedFields(t *testing.T) {
	mutations := map[string]string{
		"amount":    "100.01",
		"txnid":     "TXN2",
		"email":     "a@c.com",
		"status":    "failure",
		"firstname": "B",
	}
	for field, value := range mutations {
		f := responseFields("success")
		f[field] = value
		assert.False(t, VerifyResponseHash(f, testSalt, knownSuccessResponseHash),
			"mutated %s must fail verification", field)
	}
}

func TestVerifyResponseHashRejectsMissingFields(t *testing.T) {
	for _, field := range []string{"status", "email", "firstname", "productinfo", "amount", "txnid", "key"} {
		f := responseFields("success")
		delete(f, field)
		assert.False(t, VerifyResponseHash(f, testSalt, knownSuccessResponseHash),
			"missing %s must fail verification", field)
	}
}

func TestVerifyResponseHashRejectsMalformedHash(t *testing.T) {
	f := responseFields("success")
	assert.False(t, VerifyResponseHash(f, testSalt, ""))
	assert.False(t, VerifyResponseHash(f, testSalt, "deadbeef"))
	assert.False(t, VerifyResponseHash(f, testSalt, strings.Repeat("z", 128)))
}

func TestVerifyResponseHashAcceptsUppercaseHash(t *testing.T) {
	f := responseFields("success")
	assert.True(t, VerifyResponseHash(f, testSalt, strings.ToUpper(knownSuccessResponseHash)))
}

func TestCanonicalAmount(t *testing.T) {
	cases := map[string]string{
		"100":    "100.00",
		"100.00": "100.00",
		"99.9":   "99.90",
		" 501 ":  "501.00",
		"0.5":    "0.50",
	}
	for in, want := range cases {
		got, err := CanonicalAmount(in)
		require.NoError(t, err, "amount %q", in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "abc", "0", "-5", "0.00"} {
		_, err := CanonicalAmount(in)
		assert.Error(t, err, "amount %q must be rejected", in)
	}
}

func TestInitiatePaymentSignsCanonicalAmount(t *testing.T) {
	a := NewPayUAdapter("K", testSalt, "https://secure.payu.in/_payment", "https://x/surl", "https://x/furl")
	form, err := a.InitiatePayment(context.Background(), Request{
		TxnID:       "TXN1",
		Amount:      "100",
		ProductInfo: "Donation",
		FirstName:   "A",
		Email:       "a@b.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://secure.payu.in/_payment", form.ActionURL)
	assert.Equal(t, "100.00", form.Fields["amount"])
	assert.Equal(t, knownRequestHash, form.Fields["hash"])
	assert.Equal(t, "https://x/surl", form.Fields["surl"])
	assert.Equal(t, "https://x/furl", form.Fields["furl"])
}

func TestInitiatePaymentRejectsBadInput(t *testing.T) {
	a := NewPayUAdapter("K", testSalt, "https://gw", "s", "f")
	_, err := a.InitiatePayment(context.Background(), Request{Amount: "100"})
	assert.Error(t, err, "missing txnid")
	_, err = a.InitiatePayment(context.Background(), Request{TxnID: "T", Amount: "-1"})
	assert.Error(t, err, "negative amount")
}

func TestVerifyPaymentTrustsOnlyVerifiedSuccess(t *testing.T) {
	a := NewPayUAdapter("K", testSalt, "https://gw", "s", "f")

	params := responseFields("success")
	params["hash"] = knownSuccessResponseHash
	res, err := a.VerifyPayment(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, CategoryCompleted, res.Category)

	// Gateway claims success but the hash does not verify: the claimed
	// status is untrusted and the outcome is verification_failed.
	params["amount"] = "999.00"
	res, err = a.VerifyPayment(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, CategoryVerificationFailed, res.Category)
}

func TestVerifyPaymentClassifiesFailureLeg(t *testing.T) {
	a := NewPayUAdapter("K", testSalt, "https://gw", "s", "f")
	params := responseFields("failure")
	params["hash"] = knownFailureResponseHash
	params["error"] = "payment_cancelled"
	res, err := a.VerifyPayment(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, CategoryPaymentCancelled, res.Category)

	// No explicit error token: fall back to classifying the status itself.
	delete(params, "error")
	res, err = a.VerifyPayment(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, CategoryPaymentFailed, res.Category)
}
