package echoutil

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Headers carrying the caller.
//
// App Service authentication sets X-MS-CLIENT-PRINCIPAL-*, which take precedence.
const (
	HeaderAADUserId   = "X-MS-CLIENT-PRINCIPAL-ID"
	HeaderAADUserName = "X-MS-CLIENT-PRINCIPAL-NAME"
	HeaderUserId      = "Feast-Core-User-Id"
	HeaderUserName    = "Feast-Core-User-Name"

	contextKeyCaller = "feast.caller"
)

// Caller is who sent the request. It is not authenticated here.
type Caller struct {
	Id   string
	Name string
}

// Identify records the caller of the request.
//
// Id and Name are taken from the headers, or from the claims "oid" and "name"
// of the bearer token. Signatures of tokens are not verified; the service is
// expected to run behind an authenticating front end.
func Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(contextKeyCaller, identify(c))
		return next(c)
	}
}

func identify(c echo.Context) Caller {
	h := c.Request().Header
	caller := Caller{Id: h.Get(HeaderUserId), Name: h.Get(HeaderUserName)}
	if id := h.Get(HeaderAADUserId); id != "" {
		caller.Id = id
	}
	if name := h.Get(HeaderAADUserName); name != "" {
		caller.Name = name
	}
	if caller.Id != "" && caller.Name != "" {
		return caller
	}

	claims := bearerClaims(h.Get(echo.HeaderAuthorization))
	if caller.Id == "" {
		caller.Id, _ = claims["oid"].(string)
	}
	if caller.Name == "" {
		caller.Name, _ = claims["name"].(string)
	}
	return caller
}

func bearerClaims(authorization string) jwt.MapClaims {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return jwt.MapClaims{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return jwt.MapClaims{}
	}
	return claims
}

// GetCaller returns the caller recorded by Identify.
func GetCaller(c echo.Context) Caller {
	caller, _ := c.Get(contextKeyCaller).(Caller)
	return caller
}
