package sim

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Params holds the scalar inputs of a simulation run. Field tags carry the
// defaults applied by DefaultParams and the rules enforced by Validate.
type Params struct {
	InitialCapital float64 `json:"initialCapital" mapstructure:"initialCapital" default:"10000" validate:"finite,gt=0"`
	Ticker         string  `json:"ticker" mapstructure:"ticker" default:"SPY" validate:"required,max=16"`
	Years          int     `json:"years" mapstructure:"years" default:"5" validate:"gt=0"`
	InitialAlpha   float64 `json:"initialAlpha" mapstructure:"initialAlpha" default:"0.05" validate:"finite"`
	DecayRate      float64 `json:"decayRate" mapstructure:"decayRate" default:"0.1" validate:"finite"`
	Beta           float64 `json:"beta" mapstructure:"beta" default:"1.0" validate:"finite"`
	NoiseStdFrac   float64 `json:"noiseStdFrac" mapstructure:"noiseStdFrac" default:"0.25" validate:"finite"`
	PeriodsPerYear int     `json:"periodsPerYear" mapstructure:"periodsPerYear" default:"252" validate:"gt=0"`
	Seed           *int64  `json:"seed,omitempty" mapstructure:"seed"`
}

// DefaultParams returns Params populated from the struct's default tags.
func DefaultParams() Params {
	var p Params
	defaults.MustSet(&p)
	return p
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validate checks every field and reports all problems at once. The returned
// error, when non-nil, is a ParamErrors and matches ErrInvalidParameter.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	out := make(ParamErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ParamError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be > %s, got %v", fe.Param(), fe.Value())
	case "finite":
		return fmt.Sprintf("must be a finite number, got %v", fe.Value())
	case "required":
		return "required field is empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
