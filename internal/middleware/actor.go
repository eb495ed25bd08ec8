package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/models"
)

// ContextActorKey is the gin context key storing the request actor.
const ContextActorKey = "currentActor"

const (
	actorIDHeader   = "X-Actor-ID"
	actorRoleHeader = "X-Actor-Role"
)

// Actor tags each request with the calling participant taken from the
// actor headers. It never rejects a request: actor identity feeds reminder
// targeting and audit rows, not access control.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(actorIDHeader))
		if id == "" {
			c.Next()
			return
		}
		role := models.ActorRole(strings.ToUpper(strings.TrimSpace(c.GetHeader(actorRoleHeader))))
		switch role {
		case models.RoleManager, models.RoleEmployee, models.RoleAdmin:
		default:
			role = models.RoleEmployee
		}
		c.Set(ContextActorKey, &models.Actor{ID: id, Role: role})
		c.Next()
	}
}
