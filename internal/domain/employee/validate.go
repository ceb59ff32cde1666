package employee

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
)

var mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return mailboxPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks required fields across every supplied section and reports
// all offenders at once. On update the root key comes from the path, so
// personal_email is not checked there.
func Validate(in *ProfileInput, creating bool) error {
	if in == nil {
		return errors.WithStack(&ValidationError{Fields: []string{Root.Name}, Message: "Request body is required"})
	}

	var fields []string
	root := in.PersonalDetails
	switch {
	case creating && !root.Valid:
		return errors.WithStack(&ValidationError{Fields: []string{Root.Name}, Message: "Personal details are required"})
	case root.null():
		return errors.WithStack(&ValidationError{Fields: []string{Root.Name}, Message: "Personal details cannot be null"})
	case root.Valid:
		for _, f := range structErrors(&root.Value, "") {
			if !creating && f == keyColumn {
				continue
			}
			fields = append(fields, f)
		}
	}

	for _, spec := range Children {
		sec := in.section(spec.Name)
		if !sec.present() || sec.null() {
			continue
		}
		for i, row := range spec.rows(sec.value()) {
			prefix := spec.Name + "."
			if spec.Cardinality == List {
				prefix = fmt.Sprintf("%s[%d].", spec.Name, i)
			}
			fields = append(fields, structErrors(row.Interface(), prefix)...)
		}
	}

	if len(fields) > 0 {
		return invalid(fields...)
	}
	return nil
}

func structErrors(v any, prefix string) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{strings.TrimSuffix(prefix, ".")}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, prefix+fe.Field())
	}
	return out
}
