package reservations

import (
	"strings"
	"unicode"

	"seatflow/internal/shared/apperrors"
)

// NormalizeNationalID keeps the digits and prefixes them with V-
func NormalizeNationalID(raw string) string {
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}
	return "V-" + digits
}

// NormalizeName keeps letters and single spaces, upper-cased
func NormalizeName(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func NormalizePhone(raw string) string {
	return onlyDigits(raw)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type customer struct {
	Name       string
	Phone      string
	NationalID string
}

func normalizeCustomer(req ReserveRequest) (customer, error) {
	c := customer{
		Name:       NormalizeName(req.FirstName + " " + req.LastName),
		Phone:      NormalizePhone(req.Phone),
		NationalID: NormalizeNationalID(req.NationalID),
	}

	var problems []string
	if NormalizeName(req.FirstName) == "" || NormalizeName(req.LastName) == "" {
		problems = append(problems, "first and last name are required")
	}
	if len(c.Phone) < 7 {
		problems = append(problems, "phone must have at least 7 digits")
	}
	if c.NationalID == "" {
		problems = append(problems, "national id is required")
	}
	if len(problems) > 0 {
		return c, apperrors.NewValidation(problems...)
	}
	return c, nil
}
