// submission.go
//
// jobtrack - job application tracking data service
//

package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the submitted field name, not the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// JobSubmission is the raw job-editor form input. Fields are trimmed of
// surrounding whitespace before the length constraints run.
type JobSubmission struct {
	ID          string `form:"id"`
	Name        string `form:"name" validate:"required,min=1,max=100"`
	Description string `form:"description" validate:"required,min=1,max=10000"`
	Status      string `form:"status" validate:"required,min=1,max=10000"`
	Source      string `form:"source" validate:"required,min=1,max=100"`
	URL         string `form:"url"`
	Questions   string `form:"questions"`
	UpdatedAt   string `form:"updatedAt"`
}

// Trim strips surrounding whitespace from every submitted field.
func (s *JobSubmission) Trim() {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Status = strings.TrimSpace(s.Status)
	s.Source = strings.TrimSpace(s.Source)
	s.URL = strings.TrimSpace(s.URL)
	s.Questions = strings.TrimSpace(s.Questions)
	s.UpdatedAt = strings.TrimSpace(s.UpdatedAt)
}

// ValidateJobFields runs the constraint table over a job submission without
// touching the store. Both the form boundary and the GraphQL boundary feed
// their raw input through it.
func ValidateJobFields(s *JobSubmission) (services.JobInput, *types.ValidationError) {
	s.Trim()
	report := &types.ValidationError{}

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok {
			for _, fe := range fieldErrs {
				report.AddFieldError(fe.Field(), constraintMessage(fe))
			}
		} else {
			report.FormErrors = append(report.FormErrors, err.Error())
		}
	}

	input := services.JobInput{
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		Source:      s.Source,
		URL:         s.URL,
		Questions:   s.Questions,
		UpdatedAt:   s.UpdatedAt,
	}

	if report.HasErrors() {
		return services.JobInput{}, report
	}
	return input, nil
}

// ValidateJob validates and coerces a job submission for actingUserID.
// On success the returned JobInput is ready for the reconciliation service.
// When the submission names an existing job id, its existence and ownership
// are checked here as part of validation: a miss produces a field-level
// "Job not found" error rather than an exception. No store writes happen on
// the validation path.
func ValidateJob(db *gorm.DB, s *JobSubmission, actingUserID uint64) (services.JobInput, *types.ValidationError) {
	s.Trim()
	report := &types.ValidationError{}

	input, fieldReport := ValidateJobFields(s)
	if fieldReport != nil {
		report.FieldErrors = fieldReport.FieldErrors
		report.FormErrors = fieldReport.FormErrors
	}

	if s.ID != "" {
		jobID, err := types.ParseID(s.ID)
		if err != nil {
			report.AddFieldError("id", "Job not found")
		} else if _, err := services.JobByIDOwnedBy(db, jobID, actingUserID); err != nil {
			report.AddFieldError("id", "Job not found")
		} else {
			input.ID = jobID
		}
	}

	if report.HasErrors() {
		return services.JobInput{}, report
	}
	return input, nil
}

// DeleteSubmission is the raw job-delete form input.
type DeleteSubmission struct {
	Intent string `form:"intent" validate:"required,eq=delete-job"`
	JobID  string `form:"jobId" validate:"required"`
}

// ValidateDelete validates a delete submission and coerces the job id.
func ValidateDelete(s *DeleteSubmission) (uint64, *types.ValidationError) {
	s.Intent = strings.TrimSpace(s.Intent)
	s.JobID = strings.TrimSpace(s.JobID)
	report := &types.ValidationError{}

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok {
			for _, fe := range fieldErrs {
				report.AddFieldError(fe.Field(), constraintMessage(fe))
			}
		} else {
			report.FormErrors = append(report.FormErrors, err.Error())
		}
		return 0, report
	}

	jobID, err := types.ParseID(s.JobID)
	if err != nil {
		report.AddFieldError("jobId", "Job not found")
		return 0, report
	}
	return jobID, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = fieldErrs
	}
	return ok
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "eq":
		return fmt.Sprintf("Must be %q", fe.Param())
	default:
		return "Invalid"
	}
}
