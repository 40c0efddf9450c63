// Package barcode validates retail barcode strings (EAN-13, UPC-A,
// EAN-8, ITF-14) and extracts plausible codes from noisy digit runs.
package barcode

import "strings"

// Format identifies the barcode numbering scheme by length.
type Format string

const (
	FormatEAN13   Format = "EAN-13"
	FormatUPCA    Format = "UPC-A"
	FormatEAN8    Format = "EAN-8"
	FormatITF14   Format = "ITF-14"
	FormatGeneric Format = "Generic"
	FormatInvalid Format = ""
)

// Normalize strips every character that is not a decimal digit.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// Validate reports whether raw is a plausible product barcode.
// The input is normalized first; the normalized length must be 8-14
// digits. 13-digit codes must pass the EAN-13 checksum and 12-digit
// codes the UPC-A checksum. Other lengths have no checksum scheme and
// are accepted on the digit/length check alone.
func Validate(raw string) bool {
	code := Normalize(raw)
	if len(code) < 8 || len(code) > 14 {
		return false
	}
	switch len(code) {
	case 13:
		return checkEAN13(code)
	case 12:
		return checkUPCA(code)
	}
	return true
}

// DetectFormat classifies a normalized code by length. Returns
// FormatInvalid for lengths outside 8-14.
func DetectFormat(code string) Format {
	switch len(code) {
	case 13:
		return FormatEAN13
	case 12:
		return FormatUPCA
	case 8:
		return FormatEAN8
	case 14:
		return FormatITF14
	}
	if len(code) >= 8 && len(code) <= 14 {
		return FormatGeneric
	}
	return FormatInvalid
}

// Checksum verifies the check digit of code for the given format.
// Generic codes carry no check digit and always pass.
func Checksum(code string, format Format) bool {
	switch format {
	case FormatEAN13:
		return checkEAN13(code)
	case FormatUPCA:
		return checkUPCA(code)
	case FormatEAN8:
		return checkEAN8(code)
	case FormatITF14:
		return checkITF14(code)
	case FormatGeneric:
		return len(code) >= 8
	}
	return false
}

// Candidate is a barcode extracted from a noisy digit string.
type Candidate struct {
	Code   string
	Format Format
}

// extractLengths is the order in which candidate windows are tried:
// the checksummed formats first, then ITF-14.
var extractLengths = []int{13, 12, 8, 14}

// Extract searches a digit string (e.g. the output of a vision model
// reading a photographed barcode) for a code whose format checksum
// passes. Windows are taken from the start and the end of the string,
// since OCR-style readers often pick up stray leading or trailing
// digits. Returns false when no candidate validates.
func Extract(raw string) (Candidate, bool) {
	digits := Normalize(raw)
	if digits == "" {
		return Candidate{}, false
	}

	var candidates []string
	for _, n := range extractLengths {
		if len(digits) >= n {
			candidates = append(candidates, digits[:n])
			if len(digits) > n {
				candidates = append(candidates, digits[len(digits)-n:])
			}
		}
	}
	if len(digits) >= 8 && len(digits) <= 14 {
		candidates = append(candidates, digits)
	}

	for _, code := range candidates {
		format := DetectFormat(code)
		if format == FormatInvalid {
			continue
		}
		if Checksum(code, format) {
			return Candidate{Code: code, Format: format}, true
		}
	}
	return Candidate{}, false
}

// checkEAN13 verifies an EAN-13 check digit: the first 12 digits are
// weighted 1,3,1,3,... and the check digit is (10 - sum mod 10) mod 10.
func checkEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(code[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == int(code[12]-'0')
}

// checkUPCA verifies a UPC-A check digit: weights are 3,1,3,1,...
// over the first 11 digits.
func checkUPCA(code string) bool {
	if len(code) != 12 {
		return false
	}
	sum := 0
	for i := 0; i < 11; i++ {
		d := int(code[i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == int(code[11]-'0')
}

// checkEAN8 verifies an EAN-8 check digit: weights 3,1,3,1,...
// over the first 7 digits.
func checkEAN8(code string) bool {
	if len(code) != 8 {
		return false
	}
	sum := 0
	for i := 0; i < 7; i++ {
		d := int(code[i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == int(code[7]-'0')
}

// checkITF14 verifies an ITF-14 check digit: weights 3,1,3,1,...
// over the first 13 digits.
func checkITF14(code string) bool {
	if len(code) != 14 {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		d := int(code[i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == int(code[13]-'0')
}
