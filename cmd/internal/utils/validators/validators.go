package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// New returns a validator with every custom note validation registered.
func New() *validator.Validate {
	validate := validator.New()
	Register(validate)
	return validate
}

func Register(validate *validator.Validate) {
	if err := validate.RegisterValidation("notecolor", NoteColor); err != nil {
		log.Fatalf("failed to register 'notecolor' validation: %v", err)
	}
}

// NoteColor accepts #rgb, #rrggbb and #rrggbbaa hex colors.
func NoteColor(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return colorRegex.MatchString(val)
}
