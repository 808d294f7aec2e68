package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/seniorcare/admin-api/internal/model"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

// ActorKey is where the auth middleware stores the authenticated actor.
const ActorKey = "actor"

// ActorFromContext returns the authenticated actor set by the auth
// middleware.
func ActorFromContext(c *gin.Context) (model.Actor, error) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return model.Actor{}, apperrors.Unauthorized("authentication required")
	}
	actor, ok := v.(model.Actor)
	if !ok {
		return model.Actor{}, apperrors.Unauthorized("authentication required")
	}
	return actor, nil
}
