package dto

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Field limits shared by request payloads.
const (
	MaxEmailLength    = 120
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
	MaxNameLength     = 100
	MaxProjectName    = 200
	MaxTaskTitle      = 200
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// OptionalString tells an absent JSON field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// IsNull reports an explicit null.
func (o OptionalString) IsNull() bool {
	return o.Set && o.Value == nil
}

// firstViolation picks the error of the first listed field that failed, so
// callers report one constraint at a time in declaration order.
func firstViolation(err error, fields ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, f := range fields {
		if fieldErr := errs[f]; fieldErr != nil {
			return fieldErr
		}
	}
	return err
}

func notBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	})
}

func emailRules(required bool) []validation.Rule {
	rules := []validation.Rule{
		validation.Match(emailPattern).Error("invalid email format"),
		validation.Length(0, MaxEmailLength).Error("email must be 120 characters or less"),
	}
	if required {
		rules = append([]validation.Rule{validation.Required.Error("email cannot be empty")}, rules...)
	}
	return rules
}

func passwordRules(required bool) []validation.Rule {
	rules := []validation.Rule{
		validation.Length(MinPasswordLength, 0).Error("password must be at least 6 characters long"),
		validation.Length(0, MaxPasswordLength).Error("password must be 72 characters or less"),
	}
	if required {
		rules = append([]validation.Rule{validation.Required.Error("password cannot be empty")}, rules...)
	}
	return rules
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		notBlank("name cannot be empty"),
		validation.RuneLength(0, MaxNameLength).Error("name must be 100 characters or less"),
	}
}

func userTypeRule() validation.Rule {
	return validation.In("manager", "employee").Error(`user_type must be either "manager" or "employee"`)
}
