package middleware

import (
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// allowedHosts returns the Host values the API answers to: the loopback
// names with the port of apiAddr
func allowedHosts(apiAddr string) map[string]bool {
	_, port, err := net.SplitHostPort(apiAddr)
	if err != nil {
		port = ""
	}
	hosts := map[string]bool{}
	for _, name := range []string{"127.0.0.1", "localhost", "::1"} {
		if port == "" {
			hosts[name] = true
			continue
		}
		hosts[net.JoinHostPort(name, port)] = true
	}
	return hosts
}

func forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": msg})
}

// RequireLoopback rejects requests that do not originate from this machine.
// The API has no authentication, so this is its only access control. Besides
// the peer address it checks the Host header against the loopback names on
// the API port, and any Origin header against the same list, so a page that
// rebinds its own domain to 127.0.0.1 cannot reach it from a browser.
func RequireLoopback(apiAddr string) echo.MiddlewareFunc {
	hosts := allowedHosts(apiAddr)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			host, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				host = req.RemoteAddr
			}
			ip := net.ParseIP(host)
			if ip == nil || !ip.IsLoopback() {
				return forbidden(c, "acceso permitido solo desde este equipo")
			}

			if !hosts[req.Host] {
				return forbidden(c, "host no permitido")
			}

			if origin := req.Header.Get(echo.HeaderOrigin); origin != "" {
				u, err := url.Parse(origin)
				if err != nil || !hosts[u.Host] {
					return forbidden(c, "origen no permitido")
				}
			}
			return next(c)
		}
	}
}
