package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	weekdayTag  = "weekday"
	weekdayText = "must be one of MON, TUE, WED, THU, FRI, SAT, SUN"

	hhmmTag   = "hhmm"
	hhmmText  = "must be a time in HH:MM format"
	hhmmRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	noticeTypeTag  = "noticetype"
	noticeTypeText = "must be one of COMMON, CANCELED, CHANGE"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	weekdayCodes = map[string]struct{}{
		"MON": {}, "TUE": {}, "WED": {}, "THU": {}, "FRI": {}, "SAT": {}, "SUN": {},
	}
	noticeTypes = map[string]struct{}{
		"COMMON": {}, "CANCELED": {}, "CHANGE": {},
	}
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(weekdayTag, weekdayValidation)
	RegisterCustomTranslation(weekdayTag, weekdayText)

	_ = Validate.RegisterValidation(hhmmTag, hhmmValidation)
	RegisterCustomTranslation(hhmmTag, hhmmText)

	_ = Validate.RegisterValidation(noticeTypeTag, noticeTypeValidation)
	RegisterCustomTranslation(noticeTypeTag, noticeTypeText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// weekdayValidation only allows the 7 symbolic day codes.
func weekdayValidation(fl validator.FieldLevel) bool {
	_, ok := weekdayCodes[fl.Field().String()]
	return ok
}

// hhmmValidation only allows 24h HH:MM time strings.
func hhmmValidation(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

// noticeTypeValidation only allows known notice types.
func noticeTypeValidation(fl validator.FieldLevel) bool {
	_, ok := noticeTypes[fl.Field().String()]
	return ok
}
