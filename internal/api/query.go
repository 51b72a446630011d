package api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

// Query parameters selecting the allowed values of each filter dimension.
const (
	paramYear        = "year"
	paramSeniority   = "seniority"
	paramContract    = "contract"
	paramCompanySize = "company_size"
)

const defaultPageLimit = 100

// parseSelection decodes the filter selection of a request. An absent
// parameter selects every option; a present one with no values selects none.
func parseSelection(params url.Values, opts models.FilterOptions) (engine.Selection, error) {
	sel := engine.Selection{
		Years:        opts.Years,
		Seniorities:  opts.Seniorities,
		Contracts:    opts.Contracts,
		CompanySizes: opts.CompanySizes,
	}

	if raw, ok := params[paramYear]; ok {
		values := splitValues(raw, nil)
		years := make([]int, 0, len(values))
		for _, v := range values {
			y, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return engine.Selection{}, ErrValidation(ValidationError{
					Field:   paramYear,
					Message: fmt.Sprintf("%q is not a year", v),
				})
			}
			years = append(years, int(y))
		}
		sel.Years = years
	}
	if raw, ok := params[paramSeniority]; ok {
		sel.Seniorities = splitValues(raw, opts.Seniorities)
	}
	if raw, ok := params[paramContract]; ok {
		sel.Contracts = splitValues(raw, opts.Contracts)
	}
	if raw, ok := params[paramCompanySize]; ok {
		sel.CompanySizes = splitValues(raw, opts.CompanySizes)
	}
	return sel, nil
}

// splitValues accepts repeated and comma separated values and drops blanks.
// A parameter equal to a known option is kept whole, so options containing
// commas or padding are selected by passing them as their own parameter.
func splitValues(raw []string, known []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if r != "" && slices.Contains(known, r) {
			out = append(out, r)
			continue
		}
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

type pageQuery struct {
	Limit  int `json:"limit" validate:"gte=1,lte=1000"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (h *Handler) parsePage(c echo.Context) (pageQuery, error) {
	q := pageQuery{Limit: defaultPageLimit}
	if err := echo.QueryParamsBinder(c).
		Int("limit", &q.Limit).
		Int("offset", &q.Offset).
		BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return q, ErrValidation(ValidationError{Field: be.Field, Message: "must be an integer"})
		}
		return q, ErrInvalidParameter
	}

	if err := h.validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	return q, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidParameter
	}
	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q constraint (%s)", fe.Tag(), fe.Param()),
		})
	}
	return ErrValidation(fields...)
}
