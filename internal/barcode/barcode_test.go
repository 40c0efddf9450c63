package barcode

import (
	"math/rand"
	"strconv"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4006381333931", "4006381333931"},
		{"abc12345678", "12345678"},
		{" 40-0638 1333931 ", "4006381333931"},
		{"no digits here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid EAN-13", "4006381333931", true},
		{"EAN-13 bad check digit", "4006381333932", false},
		{"valid UPC-A", "036000291452", true},
		{"UPC-A bad check digit", "036000291453", false},
		{"too short", "123", false},
		{"too long", "123456789012345", false},
		{"length 8, no checksum scheme", "12345678", true},
		{"length 8 after stripping letters", "abc12345678", true},
		{"length 14, no EAN/UPC checksum applied", "12345678901234", true},
		{"length 11 generic", "12345678901", true},
		{"empty", "", false},
		{"all non-digits", "hello world", false},
		{"EAN-13 with separators", "4-006381-333931", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.in); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Validate must agree with itself under normalization for arbitrary input.
func TestValidateIdempotentUnderNormalize(t *testing.T) {
	inputs := []string{
		"4006381333931", " 4006381333931 ", "ab4006381333931cd",
		"036000291452", "12345678", "---", "",
	}
	for _, in := range inputs {
		if Validate(in) != Validate(Normalize(in)) {
			t.Errorf("Validate(%q) != Validate(Normalize(%q))", in, in)
		}
	}
}

func ean13CheckDigit(body string) int {
	sum := 0
	for i, c := range body {
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func upcaCheckDigit(body string) int {
	sum := 0
	for i, c := range body {
		d := int(c - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func randomDigits(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + r.Intn(10))
	}
	return string(b)
}

// Sampled property: a 13-digit string validates iff its last digit is
// the EAN-13 formula result over the first 12.
func TestValidateEAN13Property(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		body := randomDigits(r, 12)
		check := ean13CheckDigit(body)
		for d := 0; d <= 9; d++ {
			code := body + strconv.Itoa(d)
			want := d == check
			if got := Validate(code); got != want {
				t.Fatalf("Validate(%q) = %v, want %v", code, got, want)
			}
		}
	}
}

func TestValidateUPCAProperty(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		body := randomDigits(r, 11)
		check := upcaCheckDigit(body)
		for d := 0; d <= 9; d++ {
			code := body + strconv.Itoa(d)
			want := d == check
			if got := Validate(code); got != want {
				t.Fatalf("Validate(%q) = %v, want %v", code, got, want)
			}
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		code string
		want Format
	}{
		{"4006381333931", FormatEAN13},
		{"036000291452", FormatUPCA},
		{"96385074", FormatEAN8},
		{"15400141288763", FormatITF14},
		{"123456789", FormatGeneric},
		{"1234567", FormatInvalid},
		{"", FormatInvalid},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.code); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestChecksumEAN8(t *testing.T) {
	// 96385074 is the canonical EAN-8 example code.
	if !Checksum("96385074", FormatEAN8) {
		t.Error("expected EAN-8 96385074 to pass")
	}
	if Checksum("96385075", FormatEAN8) {
		t.Error("expected EAN-8 96385075 to fail")
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantCode string
		wantOK   bool
	}{
		{"clean EAN-13", "4006381333931", "4006381333931", true},
		{"leading noise digits", "994006381333931", "4006381333931", true},
		{"trailing junk characters", "4006381333931xx", "4006381333931", true},
		{"clean UPC-A", "036000291452", "036000291452", true},
		{"clean EAN-8", "96385074", "96385074", true},
		{"empty", "", "", false},
		{"no valid candidate", "1111111111111", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got.Code != tt.wantCode {
				t.Errorf("Extract(%q) = %q, want %q", tt.in, got.Code, tt.wantCode)
			}
		})
	}
}

func TestExtractTrailingWindow(t *testing.T) {
	// Leading stray digits: the 13-digit window from the end validates.
	got, ok := Extract("9994006381333931")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got.Code != "4006381333931" || got.Format != FormatEAN13 {
		t.Errorf("got %+v, want EAN-13 4006381333931", got)
	}
}
