package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Phone numbers: digits with optional leading +, spaces, dashes, dots and parentheses
	PhonePattern = `^\+?[0-9 ()\-.]{6,25}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone *regexp.Regexp
}{
	Phone: regexp.MustCompile(PhonePattern),
}

// RegisterRules adds the custom tags used by the request DTOs
func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"phone":    matches(CompiledPatterns.Phone),
		"notblank": notBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
