package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	presentTag     = "present"
	emailFormatTag = "email_format"
)

var (
	ErrNotAStructPointer = errors.New("validation target must be a pointer to a struct")

	// matches mapstructure decoding errors: 'parent_name' expected type 'string', got ...
	decodeErrorPattern = regexp.MustCompile(`^'([^']*)' expected type '([^']*)'`)

	customMessages = map[string]string{
		presentTag:     "this field is required",
		emailFormatTag: "must be a valid email address",
	}
)

// Validator turns untyped payloads into typed values. Struct fields are
// named after their json tag and checked against their validate tag.
// The present tag only asks for the key to be in the payload with a non
// null value: an empty string is accepted.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	validate := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(fieldName)

	_ = validate.RegisterValidation(emailFormatTag, emailFormatValidation)
	// checked against the raw payload in Validate
	_ = validate.RegisterValidation(presentTag, func(validator.FieldLevel) bool { return true })

	registerFn := func(ut.Translator) error { return nil }
	for tag := range customMessages {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomErrs)
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func hasTag(fld reflect.StructField, tag string) bool {
	for _, t := range strings.Split(fld.Tag.Get("validate"), ",") {
		if t == tag {
			return true
		}
	}
	return false
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	return customMessages[fe.Tag()]
}

func emailFormatValidation(fl validator.FieldLevel) bool {
	email, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return checkmail.ValidateFormat(email) == nil
}

// Validate decodes payload into out, which must point to a struct, then
// checks it. Unknown payload keys are dropped. Every failing field is
// reported in the returned FieldErrors.
func (v *Validator) Validate(payload map[string]interface{}, out interface{}) error {
	if rv := reflect.ValueOf(out); rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return ErrNotAStructPointer
	}

	fieldErrors := FieldErrors{}

	structType := reflect.TypeOf(out).Elem()
	for i := 0; i < structType.NumField(); i++ {
		fld := structType.Field(i)
		if !hasTag(fld, presentTag) {
			continue
		}
		name := fieldName(fld)
		if value, ok := payload[name]; !ok || value == nil {
			fieldErrors.Add(name, customMessages[presentTag])
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build decoder")
	}
	if err := decoder.Decode(payload); err != nil {
		decodeErr, ok := err.(*mapstructure.Error)
		if !ok {
			return errors.Wrap(err, "failed to decode payload")
		}
		for _, msg := range decodeErr.Errors {
			if match := decodeErrorPattern.FindStringSubmatch(msg); match != nil {
				fieldErrors.Add(match[1], "expected a "+match[2])
				continue
			}
			return errors.Wrap(err, "failed to decode payload")
		}
	}

	if err := v.validate.Struct(out); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.Wrap(err, "failed to validate payload")
		}
		for _, fe := range validationErrs {
			// a missing or undecodable field is only reported once
			if _, decodeFailed := fieldErrors[fe.Field()]; decodeFailed {
				continue
			}
			fieldErrors.Add(fe.Field(), fe.Translate(v.translator))
		}
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}
