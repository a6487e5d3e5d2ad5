package entry

import "strings"

// ValidateCreateInput validates fields required to create an entry.
// All content fields are required; hours must be non-negative.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Physician) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Specialty) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Date) == "" {
		return ErrInvalidInput
	}
	if req.Hours < 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Observations) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Reflections) == "" {
		return ErrInvalidInput
	}
	return nil
}
