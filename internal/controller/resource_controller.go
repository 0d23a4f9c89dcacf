package controller

import (
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type resourceController struct {
	resourceService service.IResourceService
}

func NewResourceController(resourceService service.IResourceService) IResourceController {
	return &resourceController{
		resourceService: resourceService,
	}
}

func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resource/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
}

func (c *resourceController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return serverutils.ErrValidation("Query parameter 'q' is required")
	}

	res, err := c.resourceService.Search(ctx.Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search resources", res))
}
