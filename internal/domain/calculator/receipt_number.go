package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatReceiptNumber joins a branch code and a sequence as CODE-NNNN
func FormatReceiptNumber(branchCode string, sequence int) string {
	return fmt.Sprintf("%s-%04d", branchCode, sequence)
}

// ParseReceiptSequence extracts the numeric suffix of a receipt number issued
// for branchCode. ok is false for receipts of other branches or bad suffixes.
func ParseReceiptSequence(branchCode, receiptNumber string) (int, bool) {
	prefix := branchCode + "-"
	if !strings.HasPrefix(receiptNumber, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(receiptNumber[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// HighestReceiptSequence returns the largest sequence among existing receipts
// of a branch, or 0 when it has none. Comparison is numeric so CODE-10000
// ranks above CODE-9999.
func HighestReceiptSequence(branchCode string, receiptNumbers []string) int {
	highest := 0
	for _, r := range receiptNumbers {
		if n, ok := ParseReceiptSequence(branchCode, r); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// NextReceiptNumber returns the receipt that follows the highest existing one
func NextReceiptNumber(branchCode string, receiptNumbers []string) string {
	return FormatReceiptNumber(branchCode, HighestReceiptSequence(branchCode, receiptNumbers)+1)
}
