package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/middleware"
	"github.com/noah-isme/interview-flow-api/internal/models"
)

func actorFromContext(c *gin.Context) *models.Actor {
	value, exists := c.Get(middleware.ContextActorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*models.Actor)
	if !ok {
		return nil
	}
	return actor
}

func actorID(c *gin.Context) string {
	if actor := actorFromContext(c); actor != nil {
		return actor.ID
	}
	return ""
}
