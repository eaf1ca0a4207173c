package authoringservice

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// newDraftValidator monta o validador de esquema do rascunho com as regras
// customizadas para campos numéricos mantidos como texto.
func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("decimalgt0", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f > 0
	})
	v.RegisterValidation("decimalgte0", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f >= 0
	})
	v.RegisterValidation("intgte0", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= 0
	})
	v.RegisterValidation("rate0to100", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f >= 0 && f <= 100
	})

	return v
}

// translateFieldError converte uma violação do validador em uma mensagem de
// campo legível para o vendedor.
func translateFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres.", fe.Field(), fe.Param())
	case "decimalgt0":
		return fmt.Sprintf("O campo %s deve ser um número maior que zero.", fe.Field())
	case "decimalgte0":
		return fmt.Sprintf("O campo %s deve ser um número maior ou igual a zero.", fe.Field())
	case "intgte0":
		return fmt.Sprintf("O campo %s deve ser um inteiro maior ou igual a zero.", fe.Field())
	case "rate0to100":
		return fmt.Sprintf("O campo %s deve ser uma taxa entre 0 e 100.", fe.Field())
	}
	return fmt.Sprintf("O campo %s é inválido.", fe.Field())
}
