package modconfig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/pkg/mongoid"
)

var (
	translator ut.Translator
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("objectid", objectID)
	v.RegisterCustomTypeFunc(nullFloatValuer, null.Float{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	translator, _ = ut.New(en.New()).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)
	_ = v.RegisterTranslation("objectid", translator, func(ut ut.Translator) error {
		return ut.Add("objectid", "{0} must be a 24 character hex object id", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("objectid", fe.Field())
		return t
	})

	return v
}

func objectID(fl validator.FieldLevel) bool {
	return mongoid.Valid(fl.Field().String())
}

func nullFloatValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.Float); ok && valuer.Valid {
		return valuer.Float64
	}

	return nil
}

// Validate checks the merged configuration. Every violation is collected into the extras of
// the returned mberr.ErrInvalidConfig, and its message lists them in readable form.
func Validate(conf *Config) error {
	var violations, messages []string
	add := func(violation, message string) {
		violations = append(violations, violation)
		messages = append(messages, message)
	}

	if err := validate.Struct(conf); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Wrap(err, "failed to validate mod configuration")
		}
		for _, fe := range fieldErrs {
			add(fmt.Sprintf("%s: failed on '%s'", fe.Namespace(), fe.Tag()), fe.Translate(translator))
		}
	}

	for _, e := range conf.Maps {
		if !mongoid.Valid(e.Value) {
			add(fmt.Sprintf("Config.maps[%s]: failed on 'objectid'", e.Key),
				fmt.Sprintf("maps entry %s must be a 24 character hex object id", e.Key))
		}
	}
	for _, id := range conf.ContainerTargets() {
		if !mongoid.Valid(id) {
			add(fmt.Sprintf("Config.containers[%s]: failed on 'objectid'", id),
				fmt.Sprintf("container %s must be a 24 character hex object id", id))
		}
	}
	if len(conf.BarterCost) > 0 && conf.TierBarter < 1 {
		add("Config.loyaltyLevelBarter: failed on 'required_with=barterItems'",
			"loyaltyLevelBarter is required when barterItems is set")
	}

	if len(violations) > 0 {
		return mberr.NewInvalidViolations(violations).Msg("invalid mod configuration: %s", strings.Join(messages, "; "))
	}

	return nil
}
