package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	ev := &echoValidator{v: validator.New(validator.WithRequiredStructEnabled()), now: time.Now}
	ev.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	ev.v.RegisterStructValidation(ev.validateSession, createSessionRequest{})
	ev.v.RegisterStructValidation(validateSkill, addSkillRequest{})
	return ev
}

// Validate satisfies the echo.Validator interface. Failures are returned as
// *domain.FormError carrying one message per field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			seen := make(map[string]bool, len(ve))
			for _, fe := range ve {
				msg := fieldError(fe)
				if !seen[msg] {
					seen[msg] = true
					msgs = append(msgs, msg)
				}
			}
			return domain.NewFormError(msgs...)
		}
		return err
	}
	return nil
}

// fieldMessages overrides the generic message for a struct field and tag.
var fieldMessages = map[string]string{
	"updateProfileRequest.Name.required":           "Name must be at least 2 characters",
	"updateProfileRequest.Name.min":                "Name must be at least 2 characters",
	"updateProfileRequest.Bio.max":                 "Bio must be less than 1000 characters",
	"createSessionRequest.Title.required":          "Title is required",
	"createSessionRequest.Title.max":               "Title must be 255 characters or less",
	"createSessionRequest.Description.max":         "Description must be 2000 characters or less",
	"createSessionRequest.CustomSkillName.max":     "Custom skill name must be 100 characters or less",
	"createSessionRequest.ScheduledStart.required": "Start time is required",
	"createSessionRequest.ScheduledStart.future":   "Start time must be in the future",
	"createSessionRequest.ScheduledEnd.required":   "End time is required",
	"createSessionRequest.ScheduledEnd.after":      "End time must be after start time",
	"createSessionRequest.Participants.one":        "One-on-one sessions must have exactly 1 participant",
	"createSessionRequest.Participants.group":      "Group sessions must have 1 to 3 participants",
	"reviewRequest.Rating.required":                "Please select a rating",
	"reviewRequest.Rating.min":                     "Please select a rating",
	"reviewRequest.Rating.max":                     "Please select a rating",
	"reviewRequest.ReviewText.max":                 "Review must be 2000 characters or less",
	"addSkillRequest.SkillID.skill":                "Please select a skill or enter a custom skill name",
	"addSkillRequest.CustomSkillName.max":          "Custom skill name must be 100 characters or less",
	"sendMessageRequest.Content.required":          "Message cannot be empty",
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func (ev *echoValidator) validateSession(sl validator.StructLevel) {
	req := sl.Current().Interface().(createSessionRequest)

	if req.ScheduledStart != nil && !req.ScheduledStart.After(ev.now()) {
		sl.ReportError(req.ScheduledStart, "scheduled_start", "ScheduledStart", "future", "")
	}
	if req.ScheduledStart != nil && req.ScheduledEnd != nil && !req.ScheduledEnd.After(*req.ScheduledStart) {
		sl.ReportError(req.ScheduledEnd, "scheduled_end", "ScheduledEnd", "after", "")
	}

	n := len(req.Participants)
	switch req.SessionType {
	case domain.SessionOneOnOne:
		if n != 1 {
			sl.ReportError(req.Participants, "participants", "Participants", "one", "")
		}
	case domain.SessionGroup:
		if n < 1 || n > 3 {
			sl.ReportError(req.Participants, "participants", "Participants", "group", "")
		}
	}
}

func validateSkill(sl validator.StructLevel) {
	req := sl.Current().Interface().(addSkillRequest)
	if req.SkillID == nil && strings.TrimSpace(req.CustomSkillName) == "" {
		sl.ReportError(req.SkillID, "skill_id", "SkillID", "skill", "")
	}
}
