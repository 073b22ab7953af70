package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
)

// Validator valida los DTO de entrada con las etiquetas `validate` y traduce los
// errores a mensajes por campo (clave = nombre json o query del campo).
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// NewValidator inicializa validator/v10 con las traducciones en inglés.
func NewValidator() *Validator {
	v := validator.New()
	enT := en.New()
	trans, _ := ut.New(enT, enT).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}
	_ = v.RegisterTranslation("datetime", trans,
		func(t ut.Translator) error {
			return t.Add("datetime", "{0} must be a valid date (YYYY-MM-DD)", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("datetime", fe.Field())
			return msg
		},
	)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{v: v, trans: trans}
}

// Struct valida in; devuelve *domain.ValidationError o nil.
func (val *Validator) Struct(in interface{}) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	verr := domain.NewValidationError()
	for _, fe := range errs {
		verr.Add(fe.Field(), fe.Translate(val.trans))
	}
	return verr.OrNil()
}

// bindJSON parsea el body y lo valida. Responde y devuelve false si algo falla.
func bindJSON(c *fiber.Ctx, val *Validator, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if err := val.Struct(out); err != nil {
		return false, respondError(c, err)
	}
	return true, nil
}

// bindQuery parsea y valida los parámetros de query.
func bindQuery(c *fiber.Ctx, val *Validator, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, respondError(c, validationError("query", "invalid query parameters"))
	}
	if err := val.Struct(out); err != nil {
		return false, respondError(c, err)
	}
	return true, nil
}

func validationError(field, msg string) error {
	verr := domain.NewValidationError()
	verr.Add(field, msg)
	return verr
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
}
