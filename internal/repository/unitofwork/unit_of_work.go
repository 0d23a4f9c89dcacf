package unitofwork

import (
	"context"

	"careerpilot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ContactRepository() contract.ContactRepository
	ResumeRepository() contract.ResumeRepository
	ResumeEmbeddingRepository() contract.ResumeEmbeddingRepository
	CoverLetterRepository() contract.CoverLetterRepository
	InterviewSessionRepository() contract.InterviewSessionRepository
	InterviewMessageRepository() contract.InterviewMessageRepository
}
