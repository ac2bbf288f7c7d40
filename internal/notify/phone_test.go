package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "+919876543210",
		"+919876543210":   "+919876543210",
		"98765 43210":     "+919876543210",
		"98765-43210":     "+919876543210",
		"+1 415 523 8886": "+14155238886",
	}
	for in, want := range cases {
		got, err := NormalizePhone(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "12345", "987654321", "98765432101", "+12", "abcdefghij", "+9876543210a"} {
		_, err := NormalizePhone(in)
		assert.Error(t, err, "input %q must be rejected", in)
	}
}
