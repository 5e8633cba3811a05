// Package validation configures request validation for the HTTP entrypoint.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	ptbrtranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/api/internal/domain/entity"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
)

var hexRGBRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	setupOnce  sync.Once
	setupErr   error
	translator ut.Translator
)

// Setup registers the custom rules, type adapters and pt_BR translations on
// gin's validator engine. It is safe to call more than once.
func Setup() error {
	setupOnce.Do(func() {
		setupErr = register()
	})
	return setupErr
}

func register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(dateValue, dto.Date{})

	rules := map[string]validator.Func{
		"notblank":       validators.NotBlank,
		"hexrgb":         isHexRGB,
		"decimal_gt":     decimalGreaterThan,
		"decimal_digits": decimalDigits,
		"notfuture":      notFuture,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, found := uni.GetTranslator(locale.Locale())
	if !found {
		return errors.New("pt_BR translator not found")
	}
	if err := ptbrtranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("failed to register pt_BR translations: %w", err)
	}
	translator = trans

	return nil
}

// jsonFieldName reports fields by their JSON name so messages match the wire.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// decimalValue exposes decimals to the rules as their canonical string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// dateValue exposes dates to the rules as time.Time; the zero date counts as missing.
func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(dto.Date); ok && !d.IsZero() {
		return d.Time
	}
	return nil
}

func isHexRGB(fl validator.FieldLevel) bool {
	return hexRGBRegex.MatchString(fl.Field().String())
}

func decimalGreaterThan(fl validator.FieldLevel) bool {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return value.GreaterThan(limit)
}

// decimalDigits checks the integer and fraction digit counts; param is "<integer>_<fraction>".
func decimalDigits(fl validator.FieldLevel) bool {
	intParam, fracParam, ok := strings.Cut(fl.Param(), "_")
	if !ok {
		return false
	}
	maxInt, err := strconv.Atoi(intParam)
	if err != nil {
		return false
	}
	maxFrac, err := strconv.Atoi(fracParam)
	if err != nil {
		return false
	}

	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	// String drops trailing fractional zeros, so 10.500 counts one fraction digit.
	intPart, fracPart, _ := strings.Cut(value.Abs().String(), ".")
	intPart = strings.TrimLeft(intPart, "0")
	return len(intPart) <= maxInt && len(fracPart) <= maxFrac
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !entity.DateOf(t).After(entity.Today())
}
