package app_errors

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func ParseValidationError(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	var out []FieldError
	for _, fe := range ve {
		msgKey, params := validationMessageKey(fe)

		out = append(out, FieldError{
			Field:      toSnakeCase(fe.Field()),
			Reason:     fe.Tag(),
			MessageKey: msgKey,
			Params:     params,
		})
	}

	return out
}

func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// "CaseID" -> "case_id", not "case_i_d"
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_")
}

func validationMessageKey(fe validator.FieldError) (string, map[string]any) {
	switch fe.Tag() {
	case "required":
		return "validation.required", nil
	case "min":
		return "validation.min", map[string]any{
			"min": fe.Param(),
		}
	case "max":
		return "validation.max", map[string]any{
			"max": fe.Param(),
		}
	case "gt":
		return "validation.gt", map[string]any{
			"gt": fe.Param(),
		}
	case "email":
		return "validation.email", nil
	case "uuid":
		return "validation.uuid", nil
	case "oneof":
		return "validation.oneof", map[string]any{
			"values": fe.Param(),
		}
	case "caseStatus":
		return "validation.case_status", nil
	case "taskType":
		return "validation.task_type", nil
	case "requestType":
		return "validation.request_type", nil
	case "txType":
		return "validation.tx_type", nil
	case "userRole":
		return "validation.user_role", nil
	case "casePriority":
		return "validation.priority", nil
	case "taskStatus":
		return "validation.task_status", nil
	default:
		return "validation.invalid", nil
	}
}
