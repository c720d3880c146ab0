package ratelimit

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

var ErrRegistry = errx.NewRegistry("RATE")

var CodeLimited = ErrRegistry.Register("LIMITED", errx.TypeBusiness, http.StatusTooManyRequests, "Too many requests, try again later")

func ErrLimited() *errx.Error {
	return ErrRegistry.New(CodeLimited)
}

// New returns a per-client limiter allowing max requests per window.
// A nil storage keeps counters in process memory.
func New(storage fiber.Storage, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "submit:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			e := ErrLimited()
			return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
		},
		Storage: storage,
	})
}
