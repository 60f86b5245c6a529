package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"

	"funcionarioService/models"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FuncionarioRequest is the body accepted by create and update. Pointer fields
// distinguish an absent key from a zero value.
type FuncionarioRequest struct {
	Nome    *string  `json:"nome" validate:"required,notblank,max=100"`
	Cargo   *string  `json:"cargo" validate:"required,notblank,max=100"`
	Salario *float64 `json:"salario" validate:"required"`
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields []string
	cause  error
}

func (e *ValidationError) Error() string {
	if e.cause != nil {
		return "invalid funcionario payload: " + e.cause.Error()
	}
	return "invalid funcionario payload"
}

func (e *ValidationError) Unwrap() error { return e.cause }

// decodeFuncionario reads and validates the request body. Every failure is a *ValidationError.
func decodeFuncionario(w http.ResponseWriter, r *http.Request) (*FuncionarioRequest, error) {
	var req FuncionarioRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return nil, &ValidationError{cause: err}
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		cause := errors.New("trailing data after JSON body")
		if err != nil {
			cause = errors.Wrap(err, "trailing data after JSON body")
		}
		return nil, &ValidationError{cause: cause}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks that nome, cargo and salario are all present.
func (r *FuncionarioRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{cause: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields, cause: err}
}

// ToModel converts a validated request into a record carrying id.
func (r *FuncionarioRequest) ToModel(id int64) *models.Funcionario {
	return &models.Funcionario{
		ID:      id,
		Nome:    *r.Nome,
		Cargo:   *r.Cargo,
		Salario: *r.Salario,
	}
}
