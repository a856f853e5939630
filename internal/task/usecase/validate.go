package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
)

// taskRecord is the single schema every write goes through.
type taskRecord struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" validate:"omitempty,min=0"`
	Status      string  `json:"status" validate:"required,taskstatus"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return model.TaskStatus(fl.Field().String()).IsValid()
	})
	return v
}

// validateRecord checks rec against the task schema and converts failures
// into a *task.ValidationError keyed by JSON field name.
func (uc *implUseCase) validateRecord(rec taskRecord) error {
	err := uc.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return task.NewValidationError("task", err.Error())
	}

	verr := &task.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "taskstatus":
		return fmt.Sprintf("must be one of %s", statusList())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func statusList() string {
	names := make([]string, len(model.TaskStatuses))
	for i, s := range model.TaskStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// normalizeStatus applies the pending default.
func normalizeStatus(s model.TaskStatus) model.TaskStatus {
	if strings.TrimSpace(string(s)) == "" {
		return model.TaskStatusPending
	}
	return s
}
