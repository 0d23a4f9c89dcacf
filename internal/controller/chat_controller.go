package controller

import (
	"bufio"
	"errors"
	"fmt"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	SalaryCoach(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("stream", c.Stream)

	s := r.Group("/salary/v1")
	s.Use(serverutils.JwtMiddleware)
	s.Post("coach", c.SalaryCoach)
}

// plainError answers the streaming route with the error's status code and
// a plain-text body instead of the JSON envelope the error middleware
// produces for the rest of the API.
func plainError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
		message = appErr.Message
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.Status(status).SendString(message)
}

// Stream relays model output as a chunked text/plain body, flushing each
// chunk in arrival order. Validation and the pre-dispatch guards run
// before the stream writer is installed, so rejected requests still get
// their own status code. Once the first chunk is on the wire the status
// line is committed: a mid-stream upstream failure simply ends the body
// and the client gets a partial result, never fabricated content. An
// upstream error raised before anything was forwarded is written as the
// plain-text body instead.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StreamChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return plainError(ctx, serverutils.ErrValidation("Malformed request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return plainError(ctx, err)
	}

	history, err := c.chatService.PrepareStream(ctx.Context(), userId, &req)
	if err != nil {
		return plainError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("X-Accel-Buffering", "no")

	// The fiber.Ctx is pooled and must not be touched once this handler
	// returns; the fasthttp RequestCtx stays alive for the stream.
	fctx := ctx.Context()
	fctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		wrote := false
		streamErr := c.chatService.RelayStream(fctx, userId, history, func(chunk string) error {
			if _, err := w.WriteString(chunk); err != nil {
				return err
			}
			wrote = true
			return w.Flush()
		})
		if streamErr != nil && !wrote {
			message := streamErr.Error()
			var appErr *serverutils.AppError
			if errors.As(streamErr, &appErr) {
				message = appErr.Message
			}
			fmt.Fprint(w, message)
			w.Flush()
		}
	}))

	return nil
}

func (c *chatController) SalaryCoach(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SalaryCoachRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.chatService.SalaryCoach(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success salary coaching", res))
}
