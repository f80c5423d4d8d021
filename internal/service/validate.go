package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// CategoryInput carries the user-editable fields of a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor,len=4|len=7"`
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Color = strings.TrimSpace(in.Color)
	if in.Color == "" {
		in.Color = domain.DefaultCategoryColor
	}
}

// WishInput carries the user-editable fields of a wish. A nil Status means
// "not supplied": Wish on create, unchanged on update.
type WishInput struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=1000"`
	Remarks     string             `json:"remarks" validate:"max=500"`
	CategoryID  int64              `json:"categoryId" validate:"required,gt=0"`
	Status      *domain.WishStatus `json:"status" validate:"omitempty,wishstatus"`
}

func (in *WishInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Remarks = strings.TrimSpace(in.Remarks)
	if in.Status != nil && *in.Status == "" {
		in.Status = nil
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("wishstatus", func(fl validator.FieldLevel) bool {
		return domain.WishStatus(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs the struct tags and folds any failures into a single
// domain.ErrInvalidInput error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	if strings.HasPrefix(fe.Tag(), "len=") {
		return fe.Field() + " must be a hex color in #RGB or #RRGGBB form"
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fe.Field() + " must be a positive id"
	case "hexcolor":
		return fe.Field() + " must be a hex color such as #3B82F6"
	case "wishstatus":
		return fmt.Sprintf("%s must be one of WISH, IN_PROGRESS, ACHIEVED", fe.Field())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
