// Package server is a development backend implementing the REST contract
// the taskdeck client talks to, so the tool runs end-to-end without an
// external service.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server bundles the storage and token secret behind a gin router.
type Server struct {
	store  *Store
	secret []byte
}

// New creates a server over store. secret signs and verifies bearer tokens.
func New(store *Store, secret []byte) *Server {
	return &Server{store: store, secret: secret}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "api is running"})
	})

	router.POST("/users", s.createUser)
	router.GET("/users", s.findUsers)
	router.POST("/auth/login", s.login)

	authed := router.Group("/tasks", s.authRequired())
	authed.GET("", s.listTasks)
	authed.POST("", s.createTask)
	authed.PUT("/:id", s.replaceTask)
	authed.DELETE("/:id", s.deleteTask)

	return router
}
