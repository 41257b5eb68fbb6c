package controller

import (
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/pkg/serverutils"
	"inkfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEngagementController interface {
	RegisterRoutes(r fiber.Router)
	ToggleLike(ctx *fiber.Ctx) error
	LikeStatus(ctx *fiber.Ctx) error
	ToggleFavorite(ctx *fiber.Ctx) error
	FavoriteStatus(ctx *fiber.Ctx) error
	ListFavorites(ctx *fiber.Ctx) error
}

type engagementController struct {
	engagementService service.IEngagementService
}

func NewEngagementController(engagementService service.IEngagementService) IEngagementController {
	return &engagementController{
		engagementService: engagementService,
	}
}

func (c *engagementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/engagement/v1")
	// Toggles need a caller; status reads also work anonymously
	h.Post("notes/:id/like", serverutils.JwtMiddleware, c.ToggleLike)
	h.Get("notes/:id/like", serverutils.OptionalJwtMiddleware, c.LikeStatus)
	h.Post("notes/:id/favorite", serverutils.JwtMiddleware, c.ToggleFavorite)
	h.Get("notes/:id/favorite", serverutils.OptionalJwtMiddleware, c.FavoriteStatus)
	h.Get("favorites", serverutils.JwtMiddleware, c.ListFavorites)
}

func (c *engagementController) ToggleLike(ctx *fiber.Ctx) error {
	return c.toggle(ctx, entity.EngagementKindLike, "Success toggle like")
}

func (c *engagementController) ToggleFavorite(ctx *fiber.Ctx) error {
	return c.toggle(ctx, entity.EngagementKindFavorite, "Success toggle favorite")
}

func (c *engagementController) LikeStatus(ctx *fiber.Ctx) error {
	return c.status(ctx, entity.EngagementKindLike, "Success show like status")
}

func (c *engagementController) FavoriteStatus(ctx *fiber.Ctx) error {
	return c.status(ctx, entity.EngagementKindFavorite, "Success show favorite status")
}

func (c *engagementController) toggle(ctx *fiber.Ctx, kind entity.EngagementKind, message string) error {
	// 1. Ambil User ID dari Token
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	noteId, _ := uuid.Parse(idParam)

	// 2. Kirim userId ke Service
	res, err := c.engagementService.Toggle(ctx.Context(), userId, noteId, kind)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *engagementController) status(ctx *fiber.Ctx, kind entity.EngagementKind, message string) error {
	userId := c.optionalUserId(ctx)

	idParam := ctx.Params("id")
	noteId, _ := uuid.Parse(idParam)

	res, err := c.engagementService.Status(ctx.Context(), userId, noteId, kind)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *engagementController) ListFavorites(ctx *fiber.Ctx) error {
	// 1. Ambil User ID dari Token
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	page := ctx.QueryInt("page", dto.DefaultPage)
	pageSize := ctx.QueryInt("page_size", dto.DefaultPageSize)

	// 2. Kirim userId ke Service
	res, err := c.engagementService.ListFavorites(ctx.Context(), userId, page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list favorites", res))
}

// optionalUserId reads the caller set by OptionalJwtMiddleware; anonymous
// requests simply have none.
func (c *engagementController) optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}
	return &userId
}
