package tool

import (
	"fmt"
	"strings"
)

// Limits controls output truncation boundaries.
type Limits struct {
	MaxLines int
	MaxBytes int
}

// ApplyOutputLimits truncates text by line and byte limits.
func ApplyOutputLimits(text string, limits Limits) (out string, truncatedLines bool, truncatedBytes bool) {
	if limits.MaxLines > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > limits.MaxLines {
			lines = lines[:limits.MaxLines]
			text = strings.Join(lines, "\n")
			truncatedLines = true
		}
	}

	if limits.MaxBytes > 0 && len([]byte(text)) > limits.MaxBytes {
		b := []byte(text)
		text = string(b[:limits.MaxBytes])
		truncatedBytes = true
	}
	return text, truncatedLines, truncatedBytes
}

// HumanSize formats a byte count for terminal display.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGT"[exp])
}
