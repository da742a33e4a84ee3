package curriculum

import "regexp"

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Optional country code, optional area code in parentheses, then a
	// 4-5 digit block and a 4 digit block (Brazilian mobile and landline).
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-. ]?)?(\(?\d{2}\)?[-. ]?)?\d{4,5}[-. ]?\d{4}`)
)

// ExtractEmail returns the first email address in text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-like number in text, or "".
func ExtractPhone(text string) string {
	return phonePattern.FindString(text)
}
