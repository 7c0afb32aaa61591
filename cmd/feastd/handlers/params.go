package handlers

import (
	"encoding/json"
	"net/url"

	binderr "github.com/azure/feast-azure/pkg/api-types-binding/errors"
	"github.com/labstack/echo/v4"
)

// pathParam returns the unescaped path parameter.
func pathParam(c echo.Context, name string) (string, error) {
	raw := c.Param(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		v = raw
	}
	if v == "" {
		return "", binderr.MissingParameter(name)
	}
	return v, nil
}

func decodeBody(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
		return binderr.InvalidBody(err)
	}
	return nil
}
