package catalog

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultDescription is sent when a draft leaves the description blank.
const DefaultDescription = "No description"

// ErrValidation marks a draft that is missing required fields.
var ErrValidation = errors.New("missing required fields")

// Draft holds the fields of a product to be created.
type Draft struct {
	Title       string   `json:"title" validate:"required"`
	Price       float64  `json:"price" validate:"gt=0,finite"`
	Description string   `json:"description"`
	CategoryID  int64    `json:"categoryId" validate:"gt=0"`
	Images      []string `json:"images" validate:"first_required"`
}

// ValidationError lists the draft fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return IsFinite(fl.Field().Float())
	})
	// Only the first image is shown, so only the first one must be set.
	_ = v.RegisterValidation("first_required", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Len() > 0 && strings.TrimSpace(f.Index(0).String()) != ""
	})
	return v
}

// IsFinite reports whether f is neither NaN nor an infinity. Such prices
// cannot be encoded as JSON.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Normalize trims user input and fills the default description.
func (d Draft) Normalize() Draft {
	out := d
	out.Title = strings.TrimSpace(d.Title)
	out.Description = strings.TrimSpace(d.Description)
	if out.Description == "" {
		out.Description = DefaultDescription
	}
	out.Images = nil
	for _, img := range d.Images {
		out.Images = append(out.Images, strings.TrimSpace(img))
	}
	return out
}

// Validate checks the required fields: title, a positive finite price,
// category id and a first image.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// Synthesize builds the local record used when the remote create fails.
func (d Draft) Synthesize(id int64) Product {
	return Product{
		ID:          id,
		Title:       d.Title,
		Price:       d.Price,
		Description: d.Description,
		Category:    CategoryFor(d.CategoryID),
		Images:      append([]string(nil), d.Images...),
	}
}
