package constants

// Geocoding Provider Error Codes
// These constants define specific error scenarios for the external geocoding provider

const (
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeEmptyQuery        = "EMPTY_QUERY"
	ErrCodeNoResults         = "NO_RESULTS"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ProviderErrorMessages = map[string]string{
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to reach the geocoding service",
	ErrCodeInvalidDataFormat: "The data format is invalid",
	ErrCodeEmptyQuery:        "The search query cannot be empty",
	ErrCodeNoResults:         "No locations matched the search query",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := ProviderErrorMessages[code]; ok {
		return msg
	}
	return "An unknown error occurred"
}
