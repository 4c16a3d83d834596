package validators

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/domain/appointment"
)

// Register adds the scheduling tags to gin's validator:
//
//	clock   HH:MM (24:00 allowed)
//	weekday monday..sunday, any case
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", isClock); err != nil {
		return err
	}
	return v.RegisterValidation("weekday", isWeekday)
}

func isClock(fl validator.FieldLevel) bool {
	_, err := appointment.ParseClock(fl.Field().String())
	return err == nil
}

func isWeekday(fl validator.FieldLevel) bool {
	_, err := appointment.ParseDay(fl.Field().String())
	return err == nil
}
