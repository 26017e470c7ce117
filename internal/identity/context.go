// Package identity extracts the authenticated actor from the Fiber request
// context populated by the JWT middleware.
package identity

import (
	"errors"

	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FromContext builds the policy.Actor from JWT claims in context.
func FromContext(c *fiber.Ctx) (policy.Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return policy.Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return policy.Actor{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return policy.Actor{}, err
	}

	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return policy.Actor{ID: id, Role: role, Email: email}, nil
}

// UserID extracts just the user UUID from JWT claims in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	actor, err := FromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return actor.ID, nil
}
