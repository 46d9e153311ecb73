package validators

import (
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags registered and field names
// reported by their json tag.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	Register(validate)
	return validate
}

func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("isodate", IsIsoDate)
	_ = validate.RegisterValidation("slot", IsSlot)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("maxbytes", MaxBytes)
}

// IsIsoDate accepts calendar dates written as YYYY-MM-DD.
func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(entity.DateLayout, fl.Field().String())
	return err == nil
}

// IsSlot accepts "HH:MM" or "HH:MM:SS" naming one of the bookable hours.
func IsSlot(fl validator.FieldLevel) bool {
	t, ok := utils.NormalizeTime(fl.Field().String())
	return ok && entity.IsSlot(t)
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// MaxBytes bounds the encoded length of a string, unlike max which counts runes.
func MaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
