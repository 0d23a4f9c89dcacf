package service

import (
	"context"
	"testing"

	"careerpilot-be/internal/dto"
	"careerpilot-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoverLetterComposesPrompt(t *testing.T) {
	provider := &stubLLM{reply: "Dear hiring team..."}
	svc := NewCoverLetterService(nil, provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateCoverLetterRequest{
		JobTitle:       "Platform Engineer",
		CompanyName:    "Acme",
		JobDescription: "Build and run the deployment platform",
		KeySkills:      "Go, Kubernetes",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dear hiring team...", res.CoverLetter)
	assert.Contains(t, provider.prompt, "Platform Engineer")
	assert.Contains(t, provider.prompt, "Acme")
	assert.Contains(t, provider.prompt, "Go, Kubernetes")
}

func TestGenerateCoverLetterRateLimited(t *testing.T) {
	provider := &stubLLM{reply: "x"}
	svc := NewCoverLetterService(nil, provider, stubLimiter{allowed: false}, 1000, nopLogger{})

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateCoverLetterRequest{
		JobTitle:       "SRE",
		CompanyName:    "Acme",
		JobDescription: "On-call",
	})

	assert.Equal(t, 429, appErrCode(t, err))
	assert.Zero(t, provider.calls)
}

func TestGenerateCoverLetterMapsUpstream429(t *testing.T) {
	provider := &stubLLM{err: &llm.StatusError{StatusCode: 429, Body: "quota exhausted"}}
	svc := NewCoverLetterService(nil, provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateCoverLetterRequest{
		JobTitle:       "SRE",
		CompanyName:    "Acme",
		JobDescription: "On-call",
	})

	assert.Equal(t, 429, appErrCode(t, err))
}

func TestGenerateCoverLetterOverTokenCeiling(t *testing.T) {
	provider := &stubLLM{reply: "x"}
	svc := NewCoverLetterService(nil, provider, stubLimiter{allowed: true}, 10, nopLogger{})

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'j'
	}

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateCoverLetterRequest{
		JobTitle:       "SRE",
		CompanyName:    "Acme",
		JobDescription: string(long),
	})

	assert.Equal(t, 413, appErrCode(t, err))
	assert.Zero(t, provider.calls, "oversized prompts are rejected before dispatch")
}
