package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTestLogger struct{}

func (nopTestLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopTestLogger) Info(module, message string, details map[string]interface{})  {}
func (nopTestLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopTestLogger) Error(module, message string, details map[string]interface{}) {}
func (nopTestLogger) Sync() error { return nil }

type stubContactService struct {
	deleteErr error
	deleted   []uuid.UUID
}

func (s *stubContactService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	return &dto.ContactResponse{Id: uuid.New(), Name: req.Name}, nil
}

func (s *stubContactService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error) {
	return nil, serverutils.ErrNotFound("Contact")
}

func (s *stubContactService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ContactResponse, error) {
	return nil, nil
}

func (s *stubContactService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	return nil, serverutils.ErrNotFound("Contact")
}

func (s *stubContactService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newContactTestApp(svc *stubContactService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopTestLogger{}))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return c.Next()
	})
	ctrl := NewContactController(svc)
	app.Delete("/contact/v1/:id", ctrl.Delete)
	return app
}

func TestContactDeleteAnswers204Empty(t *testing.T) {
	svc := &stubContactService{}
	app := newContactTestApp(svc)

	req := httptest.NewRequest("DELETE", "/contact/v1/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
	assert.Len(t, svc.deleted, 1)
}

func TestContactDeleteMissingAnswers404(t *testing.T) {
	app := newContactTestApp(&stubContactService{deleteErr: serverutils.ErrNotFound("Contact")})

	req := httptest.NewRequest("DELETE", "/contact/v1/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 404, resp.StatusCode)
}
