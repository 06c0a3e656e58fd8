package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/jobsift/internal/posting"
)

var (
	salaryRangePattern  = regexp.MustCompile(`(?i)([$£€])\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*([kK])?\s*(?:-|–|—|to|up to)\s*[$£€]?\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*([kK])?`)
	salarySinglePattern = regexp.MustCompile(`(?i)([$£€])\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*([kK])?`)
	salaryWordPattern   = regexp.MustCompile(`(?i)\b(?:salary|compensation|pay)\b[^.\n]{0,40}?(\d{1,3}(?:,\d{3})*)\s*([kK])?\s*(?:-|–|to)\s*(\d{1,3}(?:,\d{3})*)\s*([kK])?`)
)

// extractSalary finds an annual salary range in the text. It distinguishes
// thousands notation ("120k") from literal figures, rejects values outside
// the configured sane annual band, and never reports a max below the min.
func extractSalary(text string, minBound, maxBound int) *posting.SalaryRange {
	if m := salaryRangePattern.FindStringSubmatch(text); m != nil {
		low := parseAmount(m[2], m[3])
		high := parseAmount(m[4], m[5])
		// "$100-120k" applies the k to both figures.
		if m[3] == "" && m[5] != "" && low < 1000 {
			low *= 1000
		}
		if r := buildRange(low, high, currencyFor(m[1]), minBound, maxBound); r != nil {
			return r
		}
	}

	if m := salaryWordPattern.FindStringSubmatch(text); m != nil {
		low := parseAmount(m[1], m[2])
		high := parseAmount(m[3], m[4])
		if m[2] == "" && m[4] != "" && low < 1000 {
			low *= 1000
		}
		if r := buildRange(low, high, "USD", minBound, maxBound); r != nil {
			return r
		}
	}

	if m := salarySinglePattern.FindStringSubmatch(text); m != nil {
		amount := parseAmount(m[2], m[3])
		if amount >= minBound && amount <= maxBound {
			return &posting.SalaryRange{Min: &amount, Currency: currencyFor(m[1])}
		}
	}

	return nil
}

// parseAmount converts a captured figure, expanding thousands notation.
func parseAmount(figure, kSuffix string) int {
	figure = strings.ReplaceAll(figure, ",", "")
	value, err := strconv.ParseFloat(figure, 64)
	if err != nil {
		return 0
	}
	if kSuffix != "" {
		value *= 1000
	}
	return int(value)
}

func buildRange(low, high int, currency string, minBound, maxBound int) *posting.SalaryRange {
	if low < minBound || low > maxBound {
		return nil
	}
	r := &posting.SalaryRange{Min: &low, Currency: currency}
	if high >= low && high <= maxBound {
		r.Max = &high
	}
	return r
}

func currencyFor(symbol string) string {
	switch symbol {
	case "£":
		return "GBP"
	case "€":
		return "EUR"
	default:
		return "USD"
	}
}
