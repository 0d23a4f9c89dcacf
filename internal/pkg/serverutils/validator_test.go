package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "a@b.co", Name: "Ada"})
	assert.NoError(t, err)
}

func TestValidateRequestNamesFirstFailingField(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "not-an-email", Name: "Ada"})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "email")
}
