package web

import (
	"errors"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"quacker/internal/domain"
	"quacker/internal/usecases"
	"quacker/pkg/log"
)

// Handlers contains the HTTP handlers for the feed.
type Handlers struct {
	feed       *usecases.FeedCoordinator
	adminReset bool
}

// NewHandlers creates a new Handlers instance.
// adminReset enables DELETE /api/quacks.
func NewHandlers(feed *usecases.FeedCoordinator, adminReset bool) *Handlers {
	return &Handlers{
		feed:       feed,
		adminReset: adminReset,
	}
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

// Home renders the feed, most recent first.
func (h *Handlers) Home(c *fiber.Ctx) error {
	var current *domain.User
	if u, ok := h.feed.CurrentUser(); ok {
		current = &u
	}
	return render(c, FeedPage(current, usecases.NewestFirst(h.feed.Quacks())))
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "quacks": h.feed.Count()})
}

// ListQuacks returns the feed as JSON. ?order=newest reverses insertion order.
func (h *Handlers) ListQuacks(c *fiber.Ctx) error {
	quacks := h.feed.Quacks()
	switch c.Query("order", "oldest") {
	case "oldest":
	case "newest":
		quacks = usecases.NewestFirst(quacks)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "order must be oldest or newest"})
	}
	return c.JSON(toQuackDTOs(quacks))
}

// CreateQuack posts a quack. Without an author the session user is used.
func (h *Handlers) CreateQuack(c *fiber.Ctx) error {
	var req createQuackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid JSON body"})
	}
	if req.Text == nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "text is required"})
	}

	var author *domain.User
	if req.Author != nil {
		u := req.Author.toDomain()
		author = &u
	}
	var at time.Time
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	var (
		created domain.Quack
		err     error
	)
	h.feed.CreateQuack(c.UserContext(), *req.Text, author, at, func(q domain.Quack, e error) {
		created, err = q, e
	})
	if err != nil {
		return h.renderAPIError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toQuackDTO(created))
}

// ResetFeed clears the feed when admin reset is enabled.
func (h *Handlers) ResetFeed(c *fiber.Ctx) error {
	if !h.adminReset {
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{Error: "feed reset is disabled"})
	}
	if err := h.feed.Reset(c.UserContext()); err != nil {
		return h.renderAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSession returns the current user.
func (h *Handlers) GetSession(c *fiber.Ctx) error {
	u, ok := h.feed.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "no current user"})
	}
	return c.JSON(toUserDTO(u))
}

// PutSession replaces the current user.
func (h *Handlers) PutSession(c *fiber.Ctx) error {
	var req userDTO
	if err := c.BodyParser(&req); err != nil || req.Handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "handle is required"})
	}
	if err := h.feed.SetCurrentUser(req.toDomain()); err != nil {
		return h.renderAPIError(c, err)
	}
	log.GlobalInfoCtx(c.UserContext(), "session user changed", "handle", req.Handle)
	return c.JSON(req)
}

func (h *Handlers) renderAPIError(c *fiber.Ctx, err error) error {
	log.GlobalErrorCtx(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	return c.Status(statusFor(err)).JSON(errorResponse{Error: friendlyError(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoAuthor):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrResetUnsupported), errors.Is(err, domain.ErrNoUserContext):
		return fiber.StatusNotImplemented
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// friendlyError returns a neutral, non-blaming error message.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoAuthor):
		return "Pick who you are before quacking."
	case errors.Is(err, domain.ErrRateLimited):
		return "You're quacking fast. Please wait a moment and try again."
	case errors.Is(err, domain.ErrResetUnsupported):
		return "This feed can't be reset."
	case errors.Is(err, domain.ErrNoUserContext):
		return "Sessions aren't available on this feed."
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "The feed is unavailable right now. Your quack was not saved."
	default:
		return "Something went wrong. Please try again in a moment."
	}
}
