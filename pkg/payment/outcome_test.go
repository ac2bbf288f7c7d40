package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKnownTokens(t *testing.T) {
	cases := map[string]Category{
		"payment_failed":      CategoryPaymentFailed,
		"failure":             CategoryPaymentFailed,
		"payment_cancelled":   CategoryPaymentCancelled,
		"cancelled":           CategoryPaymentCancelled,
		"verification_failed": CategoryVerificationFailed,
		"hash_mismatch":       CategoryVerificationFailed,
		"processing_error":    CategoryProcessingError,
		"pending":             CategoryProcessingError,
		"PAYMENT_CANCELLED":   CategoryPaymentCancelled,
		" failed ":            CategoryPaymentFailed,
	}
	for token, want := range cases {
		assert.Equal(t, want, Classify(token), "token %q", token)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for _, token := range []string{"", "success", "garbage", "💥", "E042", "null"} {
		got := Classify(token)
		assert.Equal(t, CategoryUnknown, got, "token %q", token)
		assert.NotEqual(t, CategoryCompleted, got, "classification must never upgrade to success")
	}
}

func TestDescribeSeverities(t *testing.T) {
	assert.Equal(t, "warning", Describe(CategoryPaymentCancelled).Severity)
	assert.Equal(t, "error", Describe(CategoryPaymentFailed).Severity)
	assert.Equal(t, "error", Describe(CategoryVerificationFailed).Severity)
	assert.Equal(t, "error", Describe(CategoryProcessingError).Severity)
	assert.Equal(t, "error", Describe(CategoryUnknown).Severity)
	assert.Equal(t, "success", Describe(CategoryCompleted).Severity)
}

func TestDescribeFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, Describe(CategoryUnknown), Describe(Category("nonsense")))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("payment_cancelled")
	assert.True(t, ok)
	assert.Equal(t, CategoryPaymentCancelled, c)

	c, ok = ParseCategory(" Verification_Failed ")
	assert.True(t, ok)
	assert.Equal(t, CategoryVerificationFailed, c)

	_, ok = ParseCategory("nope")
	assert.False(t, ok)
}
