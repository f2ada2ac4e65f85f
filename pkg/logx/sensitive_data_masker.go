package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// Customer financials are masked in JSON bodies, form-encoded bodies and the
// re-rendered HTML form.
//
//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// Headers.
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	// JSON fields.
	regexp.MustCompile(`(?s)("balance"\s*:\s*)[-0-9.eE+]+(\s*[,}])`),
	regexp.MustCompile(`(?s)("estimatedSalary"\s*:\s*)[-0-9.eE+]+(\s*[,}])`),
	regexp.MustCompile(`(?s)("creditScore"\s*:\s*)[-0-9.eE+]+(\s*[,}])`),
	// Form fields.
	regexp.MustCompile(`(?m)((?:^|&)balance=)[^&\r\n]*(&|$)`),
	regexp.MustCompile(`(?m)((?:^|&)estimatedSalary=)[^&\r\n]*(&|$)`),
	regexp.MustCompile(`(?m)((?:^|&)creditScore=)[^&\r\n]*(&|$)`),
	// HTML inputs.
	regexp.MustCompile(`(name="(?:balance|creditScore|estimatedSalary)"[^>]*?\svalue=")[^"]*(")`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
