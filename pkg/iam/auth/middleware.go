package auth

import (
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// Identify reads an optional bearer token and stores the resolved actor in
// the request locals. Requests without a usable token continue anonymously;
// authorization is decided by the operations themselves.
func Identify(provider IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		actor, err := provider.Identify(token)
		if err != nil {
			logx.Debugf("ignoring bearer token: %v", err)
			return c.Next()
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// GetActor returns the actor stored by Identify, or nil
func GetActor(c *fiber.Ctx) *Actor {
	actor, _ := c.Locals(actorKey).(*Actor)
	return actor
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
