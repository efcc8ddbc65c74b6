// Package validation runs per-field rule chains against a request and
// reports every failure in one response.
package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Location string

const (
	LocationBody   Location = "body"
	LocationParams Location = "params"
)

// DefaultMessage is reported by rules declared without a message.
const DefaultMessage = "Invalid value"

type FieldError struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

var validate = validator.New()

type rule struct {
	tag    string
	msg    string
	number bool
	bail   bool
}

// Chain is an ordered list of rules for one field. Every rule runs unless
// an earlier failing rule was marked with Bail.
type Chain struct {
	location Location
	field    string
	rules    []rule
}

func Body(field string) *Chain {
	return &Chain{location: LocationBody, field: field}
}

func Param(field string) *Chain {
	return &Chain{location: LocationParams, field: field}
}

// Is adds a validator tag applied to the field's string form.
func (c *Chain) Is(tag, msg string) *Chain {
	c.rules = append(c.rules, rule{tag: tag, msg: msg})
	return c
}

// Number adds a tag applied to the field parsed as a float. Values that do
// not parse fail the rule.
func (c *Chain) Number(tag, msg string) *Chain {
	c.rules = append(c.rules, rule{tag: tag, msg: msg, number: true})
	return c
}

// Bail stops the chain when the preceding rule fails.
func (c *Chain) Bail() *Chain {
	if n := len(c.rules); n > 0 {
		c.rules[n-1].bail = true
	}
	return c
}

func (c *Chain) run(value any, present bool) []FieldError {
	str := stringify(value)

	var errs []FieldError
	for _, r := range c.rules {
		if r.passes(str) {
			continue
		}

		msg := r.msg
		if msg == "" {
			msg = DefaultMessage
		}
		fe := FieldError{Type: "field", Msg: msg, Path: c.field, Location: c.location}
		if present {
			fe.Value = value
		}
		errs = append(errs, fe)

		if r.bail {
			break
		}
	}
	return errs
}

func (r rule) passes(str string) bool {
	if r.number {
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return false
		}
		return validate.Var(f, r.tag) == nil
	}
	return validate.Var(str, r.tag) == nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Run evaluates the chains against the request. The JSON body is cached on
// the context so handlers can bind it again with ShouldBindBodyWith.
func Run(c *gin.Context, chains ...*Chain) []FieldError {
	var body map[string]any
	for _, chain := range chains {
		if chain.location == LocationBody {
			// empty or non-object bodies validate as if no fields were sent
			_ = c.ShouldBindBodyWith(&body, binding.JSON)
			break
		}
	}

	var errs []FieldError
	for _, chain := range chains {
		var value any
		var present bool
		switch chain.location {
		case LocationBody:
			value, present = body[chain.field]
		case LocationParams:
			value = c.Param(chain.field)
			present = true
		}
		errs = append(errs, chain.run(value, present)...)
	}
	return errs
}

// Check aborts with 400 and the collected field errors when any chain fails.
func Check(chains ...*Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errs := Run(c, chains...); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorsResponse{Errors: errs})
			return
		}
		c.Next()
	}
}
