package handlers

import (
	"errors"

	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/utils"
	"foodgram/pkg/shopping"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		DownloadShoppingList(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService) ShoppingHandler {
	return &shoppingHandler{shoppingService: shoppingService}
}

func (h *shoppingHandler) DownloadShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.shoppingService.AggregateShoppingList(c.Context(), userID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrInconsistentCatalog) {
			status = fiber.StatusInternalServerError
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedDownloadList, err)
	}

	if c.Query("format", "pdf") == "txt" {
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping-list.txt"`)
		return c.Send(shopping.RenderText(items))
	}

	layout := shopping.DefaultLayout()
	layout.FontPath = utils.GetConfig("REPORT_FONT_PATH")
	doc, err := shopping.RenderPDF(items, layout)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDownloadList, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping-list.pdf"`)
	return c.Send(doc)
}
