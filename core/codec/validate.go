package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/eventplan/core/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("instant", func(fl validator.FieldLevel) bool {
			_, ok := parseInstant(fl.Field().String())
			return ok
		}); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// Validate checks a decoded document and maps it to a project. Every
// violation is reported in a single *model.ValidationError; nothing is
// coerced or dropped.
func Validate(doc *Document) (model.Project, error) {
	verr := &model.ValidationError{}
	if doc == nil {
		verr.Add("", "document is empty")
		return model.Project{}, verr
	}
	collect(doc, verr)
	if verr.HasIssues() {
		return model.Project{}, verr
	}
	return toProject(doc), nil
}

func collect(doc *Document, verr *model.ValidationError) {
	if err := structValidator().Struct(doc); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			verr.Add("", err.Error())
			return
		}
		for _, fe := range fields {
			verr.Add(fieldPath(fe), fieldError(fe))
		}
	}
	if doc.SchemaVersion != nil && *doc.SchemaVersion != model.SchemaVersion {
		verr.Add("schemaVersion", fmt.Sprintf("must equal %d, got %d", model.SchemaVersion, *doc.SchemaVersion))
	}
	if doc.Client != nil && doc.Client.Role != "" && doc.Client.Role != string(model.RoleClient) {
		verr.Add("client.role", "must be CLIENT")
	}
	for i, o := range doc.Staff {
		if o.Role != "" && o.Role != string(model.RoleStaff) {
			verr.Add(fmt.Sprintf("staff[%d].role", i), "must be STAFF")
		}
	}
	for i, s := range doc.Sessions {
		start, okStart := parseInstant(s.Start)
		end, okEnd := parseInstant(s.End)
		if okStart && okEnd && !end.After(start) {
			verr.Add(fmt.Sprintf("sessions[%d].end", i), "must be after start")
		}
	}
}

// fieldPath strips the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "instant":
		return "must be an RFC 3339 instant with at most millisecond precision"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
