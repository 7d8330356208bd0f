// Package validation checks item input before it reaches the catalog.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"costcompare/internal/models"
	"costcompare/pkg/money"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

// messages holds the error shown for each field and failed tag.
var messages = map[string]string{
	"name.required":  "Item name is required.",
	"name.max":       "Item name cannot exceed 255 characters.",
	"price.required": "Price is required.",
	"price.amount":   "Price must be a valid number.",
	"price.dmin":     "Price must be at least $0.01.",
	"price.dmax":     "Price cannot exceed $999,999.99.",
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("amount", func(fl validator.FieldLevel) bool {
		_, err := money.Parse(fl.Field().String())
		return err == nil
	})
	mustRegister("dmin", decimalBound(func(v, bound decimal.Decimal) bool {
		return v.GreaterThanOrEqual(bound)
	}))
	mustRegister("dmax", decimalBound(func(v, bound decimal.Decimal) bool {
		return v.LessThanOrEqual(bound)
	}))
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// decimalBound builds a validator that compares a numeric string field
// against the tag parameter.
func decimalBound(cmp func(v, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v, err := money.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(v, bound)
	}
}

// PriceInput is a price exactly as submitted. It accepts a JSON number or a
// JSON string so that non-numeric input surfaces as a field error.
type PriceInput string

// UnmarshalJSON keeps the raw token text.
func (p *PriceInput) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*p = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(strings.TrimSpace(s))
	default:
		*p = PriceInput(raw)
	}
	return nil
}

// ItemInput is the request body for creating or updating an item.
type ItemInput struct {
	Name  string     `json:"name" form:"name" validate:"required,max=255"`
	Price PriceInput `json:"price" form:"price" validate:"required,amount,dmin=0.01,dmax=999999.99"`
}

// Validate checks input and returns one message per failing field,
// or nil when input is valid. Name is trimmed first.
func Validate(input *ItemInput) map[string]string {
	input.Name = strings.TrimSpace(input.Name)
	input.Price = PriceInput(strings.TrimSpace(string(input.Price)))

	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"_": err.Error()}
	}
	errs := make(map[string]string, len(ve))
	for _, e := range ve {
		key := e.Field() + "." + e.Tag()
		if msg, ok := messages[key]; ok {
			errs[e.Field()] = msg
			continue
		}
		errs[e.Field()] = "The " + e.Field() + " field is invalid."
	}
	return errs
}

// Item converts validated input into an Item, rounding the price to cents.
// Call only after Validate returned nil.
func (in ItemInput) Item() models.Item {
	return models.Item{
		Name:  in.Name,
		Price: mustParse(string(in.Price)).Round(2),
	}
}

func mustParse(raw string) decimal.Decimal {
	amount, err := money.Parse(raw)
	if err != nil {
		panic("validation: Item called on unvalidated input: " + err.Error())
	}
	return amount
}
