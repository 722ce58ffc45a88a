// Package handler holds what the resource handlers share.
package handler

import (
	"github.com/gin-gonic/gin"
)

// Routes are the route groups a handler registers into, by access level.
type Routes struct {
	Public    *gin.RouterGroup
	Protected *gin.RouterGroup
	Admin     *gin.RouterGroup
}

type Handler interface {
	RegisterRoutes(Routes)
}
