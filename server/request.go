package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
	"github.com/labstack/echo/v4"
)

const headerTotalCount = "X-Total-Count"

var dateType = reflect.TypeOf(model.Date{})

// bind decodes the JSON body into v. A value of the wrong type is
// reported against the field that carried it.
func bind(c echo.Context, v interface{}) error {
	err := (&echo.DefaultBinder{}).BindBody(c, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation(typeErr.Field + " must be " + describeType(typeErr.Type))
	}
	return apperr.Validation("body must be a valid JSON object")
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == dateType {
		return "a date (RFC 3339 or YYYY-MM-DD)"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "a " + t.String()
	}
}

// pageParam reads limit and offset from the query string
func pageParam(c echo.Context) (store.Page, error) {
	var (
		page     store.Page
		problems []string
	)
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			problems = append(problems, "limit must be a positive integer")
		}
		page.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			problems = append(problems, "offset must be a non-negative integer")
		}
		page.Offset = n
	}
	if len(problems) > 0 {
		return store.Page{}, apperr.Validation(problems...)
	}
	return page.Normalize(), nil
}

// listJSON writes a page of results with its total in a header
func listJSON[T any](c echo.Context, items []T, total int) error {
	if items == nil {
		items = []T{}
	}
	c.Response().Header().Set(headerTotalCount, strconv.Itoa(total))
	return c.JSON(http.StatusOK, items)
}

func success(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
