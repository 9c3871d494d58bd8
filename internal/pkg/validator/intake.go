package validator

import (
	"fmt"

	"github.com/chhatrapati/linkup/internal/entity"
)

// ValidateStartIntake validates StartIntakeRequest
func (v *Validator) ValidateStartIntake(req *entity.StartIntakeRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId", entity.ErrMissingField)
	}

	return nil
}

// ValidateSubmitResponse validates SubmitResponseRequest
func (v *Validator) ValidateSubmitResponse(req *entity.SubmitResponseRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId", entity.ErrMissingField)
	}
	if req.Response == "" {
		return fmt.Errorf("%w: response", entity.ErrMissingField)
	}

	return nil
}

// ValidateResultFormat parses the export format query parameter, defaulting
// to markdown when absent.
func (v *Validator) ValidateResultFormat(raw string) (entity.ResultFormat, error) {
	if raw == "" {
		return entity.FormatMarkdown, nil
	}

	switch format := entity.ResultFormat(raw); format {
	case entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, raw)
	}
}
