// Package handlers contains the HTTP handlers for the REST APIs.
//
// A handler is an adapter: it binds the HTTP request, converts it into
// a Command/Query DTO, invokes the use case, and renders the result.
// No business logic lives here.
package handlers

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/walletflow/internal/adapters/http/common"
)

var setupOnce sync.Once

// SetupValidator registers the custom validators with gin's binding
// engine. Safe to call from every router constructor.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Report field names by json tag, not Go struct field
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("money_amount", validateMoneyAmount)
		}
	})
}

// validateMoneyAmount accepts a non-negative decimal string with at
// most four fractional digits. Positivity is enforced by the domain
// layer so that "0" fails with a precise message rather than a format
// complaint.
var moneyPattern = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)

func validateMoneyAmount(fl validator.FieldLevel) bool {
	return moneyPattern.MatchString(fl.Field().String())
}

// HandleValidationErrors renders binding failures as a 422.
func HandleValidationErrors(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if ok := asValidationErrors(err, &validationErrors); ok && len(validationErrors) > 0 {
		fe := validationErrors[0]
		common.ValidationFailed(c, fe.Field()+": "+validationMessage(fe))
		return
	}

	common.ValidationFailed(c, "invalid request body: "+err.Error())
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = ve
	return true
}

// validationMessage returns a human-readable message for one failure.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "value is too small (minimum: " + fe.Param() + ")"
	case "max":
		return "value is too large (maximum: " + fe.Param() + ")"
	case "money_amount":
		return "invalid amount format (use a decimal string like '100.50' with at most 4 decimal places)"
	default:
		return "invalid value"
	}
}

// ============================================
// Request Parsing Helpers
// ============================================

// BindJSON binds the JSON request body. Returns false if binding
// failed, in which case the error response has already been sent.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindURI binds URI parameters.
func BindURI[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindUri(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// ============================================
// Pagination Helper
// ============================================

// PageParams carries the limit/offset query parameters. Range checks
// live in the use case layer; here only syntax is rejected.
type PageParams struct {
	Limit  int
	Offset int
}

// ParsePageParams reads limit and offset from the query string,
// falling back to the given default limit. A non-numeric value is a
// validation failure (response already sent, ok=false).
func ParsePageParams(c *gin.Context, defaultLimit int) (PageParams, bool) {
	params := PageParams{Limit: defaultLimit, Offset: 0}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			common.ValidationFailed(c, "limit: must be an integer")
			return params, false
		}
		params.Limit = n
	}

	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			common.ValidationFailed(c, "offset: must be an integer")
			return params, false
		}
		params.Offset = n
	}

	return params, true
}
