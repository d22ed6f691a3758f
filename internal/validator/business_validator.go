package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Adetops/edu-progress-tracker/internal/models"
)

// phoneNumberPattern matches E.164-style numbers after separator stripping.
var phoneNumberPattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Validator handles business rule validation
type Validator struct {
	validate *validator.Validate
}

// New creates a new business validator with all custom rules registered
func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerBusinessRules()
	return v
}

// Validate validates business rules for any struct
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateStudentCreate validates student creation business rules
func (v *Validator) ValidateStudentCreate(req *StudentCreateRequest) ValidationErrors {
	return v.Validate(req)
}

// ValidateCourseCreate validates course creation business rules
func (v *Validator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors
	errors = append(errors, v.Validate(req)...)

	// Duplicate topics silently skew completion ratios, reject them here.
	seen := make(map[string]bool, len(req.Topics))
	for _, topic := range req.Topics {
		if seen[topic] {
			errors = append(errors, ValidationError{
				Field:   "topics",
				Message: "duplicate topic: " + topic,
				Value:   topic,
				Rule:    "business_logic",
			})
		}
		seen[topic] = true
	}

	return errors
}

// ValidateActivityCreate validates recorded activity business rules
func (v *Validator) ValidateActivityCreate(req *ActivityCreateRequest) ValidationErrors {
	var errors ValidationErrors
	errors = append(errors, v.Validate(req)...)

	if req.CompletedAt != nil && req.CompletedAt.After(time.Now().Add(24*time.Hour)) {
		errors = append(errors, ValidationError{
			Field:   "completed_at",
			Message: "completion time is in the future",
			Value:   req.CompletedAt,
			Rule:    "business_logic",
		})
	}

	return errors
}

// NormalizePhoneNumber strips spaces, hyphens and parentheses so numbers can
// be stored and compared in one canonical form.
func NormalizePhoneNumber(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// registerBusinessRules registers custom business rule validators
func (v *Validator) registerBusinessRules() {
	// Guardian phone numbers, E.164 after normalization
	v.validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true // Optional field
		}
		return phoneNumberPattern.MatchString(NormalizePhoneNumber(field.String()))
	})

	// Account role validation
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})

	// Activity type validation
	v.validate.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
		t := models.ActivityType(fl.Field().String())
		switch t {
		case models.ActivityLesson, models.ActivityExercise, models.ActivityQuiz, models.ActivityTest, models.ActivityAssignment:
			return true
		}
		return false
	})

	// Score validation (0-100)
	v.validate.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true
		}
		score := fl.Field().Float()
		return score >= 0 && score <= 100
	})

	// Course title validation (1-200 characters)
	v.validate.RegisterValidation("course_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Student name validation (1-100 characters)
	v.validate.RegisterValidation("student_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 1 && len(name) <= 100
	})
}
