// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// jsonError writes the API error envelope with a plain message.
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"error": message})
}

// fieldErrors writes the API error envelope with a field-error map.
func fieldErrors(c echo.Context, fields map[string][]string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": fields})
}

// unauthorized is the single generic authentication failure. It never
// reveals whether a credential exists or is merely invalid.
func unauthorized(c echo.Context) error {
	return jsonError(c, http.StatusUnauthorized, "Unauthorized")
}

func notFound(c echo.Context) error {
	return jsonError(c, http.StatusNotFound, "Not found")
}

func internalError(c echo.Context) error {
	return jsonError(c, http.StatusInternalServerError, "Internal server error")
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure, e.g. a duplicate slug.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
