package models

// ValidationResult is the outcome of a configuration check. It is always
// returned by value so callers can render the message; an unsupported
// configuration is a structured result, never an error return.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ValidConfiguration() ValidationResult {
	return ValidationResult{Valid: true}
}

func InvalidConfiguration(message string) ValidationResult {
	return ValidationResult{Valid: false, Error: message}
}
