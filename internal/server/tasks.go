package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/task"
)

// listTasks handles GET /tasks?userId=. The scope is always the
// authenticated user; a mismatching userId query 403s.
func (s *Server) listTasks(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	if q := c.Query("userId"); q != "" && q != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	tasks, err := s.store.TasksByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// createTask handles POST /tasks. Client-assigned ids are honored; a
// missing id gets one minted here.
func (s *Server) createTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var t task.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if !task.ValidTitle(t.Title) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.UserID = userID
	if _, err := task.ParsePriority(string(t.Priority)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.Priority == "" {
		t.Priority = task.DefaultPriority
	}

	if err := s.store.PutTask(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// replaceTask handles PUT /tasks/:id with a full record. Tasks owned by
// another user are indistinguishable from missing ones.
func (s *Server) replaceTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	id := c.Param("id")

	existing, err := s.store.TaskByID(id)
	if err != nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var t task.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if !task.ValidTitle(t.Title) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	t.ID = id
	t.UserID = userID
	t.CreatedAt = existing.CreatedAt // immutable

	if err := s.store.PutTask(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// deleteTask handles DELETE /tasks/:id.
func (s *Server) deleteTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	id := c.Param("id")

	existing, err := s.store.TaskByID(id)
	if err != nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if err := s.store.DeleteTask(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}
