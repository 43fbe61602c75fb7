package handlers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// pathID parses the :id route parameter as a UUID.
func pathID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
