package inspection

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeCell applies the field-specific input transform to a raw cell
// value and returns the accepted text. It mirrors the per-keystroke grid
// behavior: digit budgets before/after the decimal point applied
// left-to-right, leading-zero stripping, range clamps for time fields, and
// character whitelists for the arm and indicator columns. Free-text fields
// get word capitalization.
func NormalizeCell(field, value string) string {
	switch field {
	case FieldRollWeight:
		return normalizeDecimal(value, 2, 2)
	case FieldRollWidthMM:
		return normalizeInteger(value, 3)
	case FieldFilmWeightGSM:
		return normalizeDecimal(value, 2, 1)
	case FieldThickness:
		return normalizeInteger(value, 2)
	case FieldRollDia:
		return normalizeInteger(value, 3)
	case FieldPaperCoreDiaID:
		return normalizeDecimal(value, 3, 1)
	case FieldPaperCoreDiaOD:
		return normalizeInteger(value, 3)
	case FieldHour:
		return clampDigits(value, 23)
	case FieldMinute:
		return clampDigits(value, 59)
	case FieldLotNo, FieldRollPosition:
		return truncateDigits(value, 2)
	case FieldArm:
		return normalizeArm(value)
	case FieldAcceptReject:
		return normalizeDisposition(value)
	default:
		if IsIndicatorField(field) {
			return normalizeIndicator(value)
		}
		return CapitalizeWords(value)
	}
}

// FinalizeCell is the blur-time pass: free-text fields are re-capitalized,
// constrained fields keep their normalized value.
func FinalizeCell(field, value string) string {
	return NormalizeCell(field, value)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDecimal enforces a digit budget of intMax before and fracMax
// after a single decimal point. When the input carries no point but exceeds
// the integer budget, the point is inserted after intMax digits and the
// remainder fills the fractional budget ("12345" with 2+2 becomes "12.34").
func normalizeDecimal(value string, intMax, fracMax int) string {
	var b strings.Builder
	seenDot := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			b.WriteRune(r)
			seenDot = true
		}
	}
	text := b.String()

	intPart := text
	fracPart := ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
		if len(intPart) > intMax {
			intPart = intPart[:intMax]
		}
		if len(fracPart) > fracMax {
			fracPart = fracPart[:fracMax]
		}
		text = intPart + "." + fracPart
	} else if len(intPart) > intMax {
		fracPart = intPart[intMax:]
		intPart = intPart[:intMax]
		if len(fracPart) > fracMax {
			fracPart = fracPart[:fracMax]
		}
		text = intPart + "." + fracPart
	}

	// Strip a leading zero unless the value is a pure decimal like "0.25".
	if strings.HasPrefix(text, "0") && !strings.HasPrefix(text, "0.") && len(text) > 1 {
		text = text[1:]
	}
	return text
}

func normalizeInteger(value string, max int) string {
	text := digitsOnly(value)
	if len(text) > max {
		text = text[:max]
	}
	for strings.HasPrefix(text, "0") && len(text) > 1 {
		text = text[1:]
	}
	return text
}

func truncateDigits(value string, max int) string {
	text := digitsOnly(value)
	if len(text) > max {
		text = text[:max]
	}
	return text
}

func clampDigits(value string, max int) string {
	text := truncateDigits(value, 2)
	if text == "" {
		return text
	}
	if n, err := strconv.Atoi(text); err == nil && n > max {
		return strconv.Itoa(max)
	}
	return text
}

func normalizeArm(value string) string {
	for _, r := range value {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return ""
}

func normalizeDisposition(value string) string {
	for _, opt := range DropdownOptions {
		if value == opt {
			return value
		}
	}
	return ""
}

func normalizeIndicator(value string) string {
	for _, r := range value {
		switch r {
		case 'O', 'o':
			return "O"
		case 'X', 'x':
			return "X"
		}
	}
	return ""
}

// CapitalizeWords uppercases the first letter of each space-separated word.
// The rest of the word is left untouched: remarks carry production codes like
// "UBS25PR026" that must survive the transform.
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
