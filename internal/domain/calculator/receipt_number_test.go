package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextReceiptNumber(t *testing.T) {
	assert.Equal(t, "DHA-0001", NextReceiptNumber("DHA", nil))

	existing := []string{}
	for i := 0; i < 3; i++ {
		next := NextReceiptNumber("DHA", existing)
		existing = append(existing, next)
	}
	assert.Equal(t, []string{"DHA-0001", "DHA-0002", "DHA-0003"}, existing)
}

func TestHighestReceiptSequence(t *testing.T) {
	receipts := []string{"DHA-0009", "DHA-10000", "DHA-9999", "DHA2-50000", "GUL-0044", "DHA-bad"}

	assert.Equal(t, 10000, HighestReceiptSequence("DHA", receipts))
	assert.Equal(t, "DHA-10001", NextReceiptNumber("DHA", receipts))
	assert.Equal(t, 0, HighestReceiptSequence("CLF", receipts))
}

func TestParseReceiptSequence(t *testing.T) {
	n, ok := ParseReceiptSequence("GUL", "GUL-0044")
	assert.True(t, ok)
	assert.Equal(t, 44, n)

	_, ok = ParseReceiptSequence("GUL", "DHA-0044")
	assert.False(t, ok)
}
