package driverapi

import (
	"strings"

	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// фото приходит только как data URL картинки
	_ = v.RegisterValidation("imagedataurl", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) <= capture.MaxPhotoDataURLBytes &&
			strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
	})
	return v
}

// validateStruct checks transport-level shape only. Business rules such as a
// required receiver name stay in the forms, which also raise the toast.
func validateStruct(s any) error {
	return validate.Struct(s)
}

type selectRequest struct {
	DeliveryID string `json:"deliveryId" validate:"required,max=64"`
}

type filterRequest struct {
	Filter string `json:"filter" validate:"omitempty,oneof=all pending in_transit delivered issue"`
}

type tabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=deliveries receipt occurrences profile"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required,oneof=pt en es"`
}

type accessibilityRequest struct {
	FontSize     *string `json:"fontSize" validate:"omitempty,oneof=small medium large"`
	HighContrast *bool   `json:"highContrast"`
}

type photoRequest struct {
	Photo string `json:"photo" validate:"required,imagedataurl"`
}

type receiptRequest struct {
	ReceiverName string `json:"receiverName" validate:"max=200"`
	ReceiverDoc  string `json:"receiverDoc" validate:"max=64"`
	Signature    string `json:"signature" validate:"omitempty,max=2000000"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type occurrenceRequest struct {
	Type        string `json:"type" validate:"max=32"`
	Description string `json:"description" validate:"max=4000"`
}
