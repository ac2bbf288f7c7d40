package payment

import "strings"

// Category is a classified payment outcome. Classify only ever produces
// the failure categories; CategoryCompleted is reachable solely through a
// verified hash plus a gateway status of "success".
type Category string

const (
	CategoryCompleted          Category = "completed"
	CategoryPaymentFailed      Category = "payment_failed"
	CategoryPaymentCancelled   Category = "payment_cancelled"
	CategoryVerificationFailed Category = "verification_failed"
	CategoryProcessingError    Category = "processing_error"
	CategoryUnknown            Category = "unknown"
)

// Description is the fixed user-facing copy for a category. No raw gateway
// payloads ever reach the user; the result page renders from this table.
type Description struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Icon     string `json:"icon"`
	Severity string `json:"severity"`
}

var classifyTable = map[string]Category{
	"payment_failed":      CategoryPaymentFailed,
	"failed":              CategoryPaymentFailed,
	"failure":             CategoryPaymentFailed,
	"payment_cancelled":   CategoryPaymentCancelled,
	"cancelled":           CategoryPaymentCancelled,
	"cancel":              CategoryPaymentCancelled,
	"user_cancelled":      CategoryPaymentCancelled,
	"verification_failed": CategoryVerificationFailed,
	"hash_mismatch":       CategoryVerificationFailed,
	"processing_error":    CategoryProcessingError,
	"pending":             CategoryProcessingError,
	"in_progress":         CategoryProcessingError,
}

var describeTable = map[Category]Description{
	CategoryCompleted: {
		Title:    "Donation received",
		Message:  "Thank you! Your donation was completed successfully.",
		Icon:     "check-circle",
		Severity: "success",
	},
	CategoryPaymentFailed: {
		Title:    "Payment failed",
		Message:  "The payment could not be completed. No amount was charged. Please try again.",
		Icon:     "x-circle",
		Severity: "error",
	},
	CategoryPaymentCancelled: {
		Title:    "Payment cancelled",
		Message:  "The payment was cancelled before completion. You can retry whenever you are ready.",
		Icon:     "alert-triangle",
		Severity: "warning",
	},
	CategoryVerificationFailed: {
		Title:    "Payment could not be verified",
		Message:  "We could not verify the payment response. If any amount was deducted, please contact support with your transaction id.",
		Icon:     "shield-off",
		Severity: "error",
	},
	CategoryProcessingError: {
		Title:    "Processing error",
		Message:  "Something went wrong while processing the payment. Please try again or contact support.",
		Icon:     "alert-octagon",
		Severity: "error",
	},
	CategoryUnknown: {
		Title:    "Payment not completed",
		Message:  "The payment did not complete. Please try again or contact support with your transaction id.",
		Icon:     "help-circle",
		Severity: "error",
	},
}

// Classify maps a freeform gateway error token to a category. Total over
// all strings: unrecognized tokens map to unknown, never to a success.
func Classify(token string) Category {
	if c, ok := classifyTable[strings.ToLower(strings.TrimSpace(token))]; ok {
		return c
	}
	return CategoryUnknown
}

// Describe returns the fixed copy for a category. Unlisted categories fall
// back to the unknown copy.
func Describe(c Category) Description {
	if d, ok := describeTable[c]; ok {
		return d
	}
	return describeTable[CategoryUnknown]
}

// ParseCategory validates a category string from an external caller.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCompleted:
		return CategoryCompleted, true
	case CategoryPaymentFailed:
		return CategoryPaymentFailed, true
	case CategoryPaymentCancelled:
		return CategoryPaymentCancelled, true
	case CategoryVerificationFailed:
		return CategoryVerificationFailed, true
	case CategoryProcessingError:
		return CategoryProcessingError, true
	case CategoryUnknown:
		return CategoryUnknown, true
	}
	return CategoryUnknown, false
}
