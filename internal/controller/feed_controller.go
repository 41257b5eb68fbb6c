package controller

import (
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/pkg/serverutils"
	"inkfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedController interface {
	RegisterRoutes(r fiber.Router)
	Mine(ctx *fiber.Ctx) error
	Discover(ctx *fiber.Ctx) error
	ShowPublic(ctx *fiber.Ctx) error
	AuthorProfile(ctx *fiber.Ctx) error
	AuthorNotes(ctx *fiber.Ctx) error
}

type feedController struct {
	feedService service.IFeedService
}

func NewFeedController(feedService service.IFeedService) IFeedController {
	return &feedController{
		feedService: feedService,
	}
}

func (c *feedController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feed/v1")
	// Only "mine" needs a logged in caller, the rest is the public surface
	h.Get("mine", serverutils.JwtMiddleware, c.Mine)
	h.Get("discover", c.Discover)
	h.Get("discover/:id", c.ShowPublic)
	h.Get("authors/:id", c.AuthorProfile)
	h.Get("authors/:id/notes", c.AuthorNotes)
}

func (c *feedController) Mine(ctx *fiber.Ctx) error {
	// 1. Ambil User ID dari Token
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	query := dto.MyNotesQuery{
		Page:     ctx.QueryInt("page", dto.DefaultPage),
		PageSize: ctx.QueryInt("page_size", dto.DefaultPageSize),
		Search:   ctx.Query("search", ""),
		Status:   ctx.Query("status", ""),
	}

	// 2. Kirim userId ke Service
	res, err := c.feedService.MyNotes(ctx.Context(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list own notes", res))
}

func (c *feedController) Discover(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", dto.DefaultPage)
	pageSize := ctx.QueryInt("page_size", dto.DefaultPageSize)

	res, err := c.feedService.Discover(ctx.Context(), page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list public feed", res))
}

func (c *feedController) ShowPublic(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.feedService.ShowPublic(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show public note", res))
}

func (c *feedController) AuthorProfile(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.feedService.AuthorProfile(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show author profile", res))
}

func (c *feedController) AuthorNotes(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	page := ctx.QueryInt("page", dto.DefaultPage)
	pageSize := ctx.QueryInt("page_size", dto.DefaultPageSize)

	res, err := c.feedService.AuthorNotes(ctx.Context(), id, page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list author notes", res))
}
