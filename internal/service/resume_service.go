package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/internal/repository/specification"
	"careerpilot-be/internal/repository/unitofwork"
	"careerpilot-be/pkg/embedding"
	"careerpilot-be/pkg/events"
	"careerpilot-be/pkg/export"
	pktNats "careerpilot-be/pkg/nats"

	"github.com/google/uuid"
)

type IResumeService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ResumeResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ExportPDF(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, string, error)
	Match(ctx context.Context, userId uuid.UUID, req *dto.MatchResumeRequest) (*dto.MatchResumeResponse, error)
}

type resumeService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	pdfRenderer       export.PDFRenderer
	logger            logger.ILogger
}

func NewResumeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	pdfRenderer export.PDFRenderer,
	log logger.ILogger,
) IResumeService {
	return &resumeService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		pdfRenderer:       pdfRenderer,
		logger:            log,
	}
}

func (s *resumeService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume := entity.Resume{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Sections:  req.Sections,
		IsPrimary: req.IsPrimary,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.IsPrimary {
		// Only one resume can be primary at a time
		if err := uow.ResumeRepository().ClearPrimaryForUser(ctx, userId); err != nil {
			return nil, err
		}
	}

	if err := uow.ResumeRepository().Create(ctx, &resume); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.enqueueIngestion(ctx, resume.Id)

	return toResumeResponse(&resume), nil
}

// enqueueIngestion hands the resume to the background embedding worker.
// Failures are logged, not surfaced: ingestion is auxiliary to the write.
func (s *resumeService) enqueueIngestion(ctx context.Context, resumeId uuid.UUID) {
	msgPayload := dto.PublishIngestResumeMessage{ResumeId: resumeId}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		s.logger.Error("ResumeService", "Failed to marshal ingest message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Error("ResumeService", "Failed to enqueue resume ingestion", map[string]interface{}{
			"resume_id": resumeId,
			"error":     err.Error(),
		})
	}
}

func (s *resumeService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, serverutils.ErrNotFound("Resume")
	}

	return toResumeResponse(resume), nil
}

func (s *resumeService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resumes, err := uow.ResumeRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "COALESCE(updated_at, created_at)", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ResumeResponse, len(resumes))
	for i, r := range resumes {
		res[i] = toResumeResponse(r)
	}
	return res, nil
}

func (s *resumeService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, serverutils.ErrNotFound("Resume")
	}

	resume.Title = req.Title
	resume.Content = req.Content
	resume.Sections = req.Sections
	now := time.Now()
	resume.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.IsPrimary && !resume.IsPrimary {
		if err := uow.ResumeRepository().ClearPrimaryForUser(ctx, userId); err != nil {
			return nil, err
		}
	}
	resume.IsPrimary = req.IsPrimary

	if err := uow.ResumeRepository().Update(ctx, resume); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Content changed, re-embed
	s.enqueueIngestion(ctx, resume.Id)

	return toResumeResponse(resume), nil
}

func (s *resumeService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if resume == nil {
		return serverutils.ErrNotFound("Resume")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResumeEmbeddingRepository().DeleteByResumeId(ctx, resume.Id); err != nil {
		return err
	}
	if err := uow.ResumeRepository().Delete(ctx, resume.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// ExportPDF renders the resume as a simple HTML document and converts
// it to PDF. Returns the bytes and a suggested filename.
func (s *resumeService) ExportPDF(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, "", err
	}
	if resume == nil {
		return nil, "", serverutils.ErrNotFound("Resume")
	}

	htmlDoc := buildResumeHTML(resume)
	pdf, err := s.pdfRenderer.RenderHTML(ctx, htmlDoc)
	if err != nil {
		s.logger.Error("ResumeService", "PDF render failed", map[string]interface{}{
			"resume_id": resume.Id,
			"error":     err.Error(),
		})
		return nil, "", serverutils.ErrUpstream("Failed to render PDF")
	}

	filename := fmt.Sprintf("%s.pdf", sanitizeFilename(resume.Title))
	return pdf, filename, nil
}

func buildResumeHTML(resume *entity.Resume) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{font-family:Helvetica,Arial,sans-serif;margin:40px;color:#222}h1{border-bottom:2px solid #222;padding-bottom:8px}h2{color:#444;margin-top:24px}p{line-height:1.5;white-space:pre-wrap}</style>")
	b.WriteString("</head><body>")
	b.WriteString("<h1>" + html.EscapeString(resume.Title) + "</h1>")

	if resume.Content != "" {
		b.WriteString("<p>" + html.EscapeString(resume.Content) + "</p>")
	}

	// Sections is a JSON object of {heading: body}; render whatever is there
	if len(resume.Sections) > 0 {
		var sections map[string]string
		if err := json.Unmarshal(resume.Sections, &sections); err == nil {
			for heading, body := range sections {
				b.WriteString("<h2>" + html.EscapeString(heading) + "</h2>")
				b.WriteString("<p>" + html.EscapeString(body) + "</p>")
			}
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "resume"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", "..", "")
	return replacer.Replace(name)
}

// Match scores the resume's stored embedding against a job description.
func (s *resumeService) Match(ctx context.Context, userId uuid.UUID, req *dto.MatchResumeRequest) (*dto.MatchResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, serverutils.ErrNotFound("Resume")
	}

	stored, err := uow.ResumeEmbeddingRepository().FindOne(ctx,
		specification.ByResumeID{ResumeID: resume.Id},
	)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		// Ingestion hasn't caught up with the latest write yet
		return nil, serverutils.ErrValidation("Resume is still being analyzed, try again shortly")
	}

	queryRes, err := s.embeddingProvider.Generate(req.JobDescription, "RETRIEVAL_QUERY")
	if err != nil {
		s.logger.Error("ResumeService", "Embedding generation failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrUpstream("Failed to analyze job description")
	}

	score := cosineSimilarity(stored.EmbeddingValue, queryRes.Embedding.Values)
	if score < 0 {
		score = 0
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent("RESUME_MATCHED", map[string]interface{}{
			"user_id":   userId,
			"resume_id": resume.Id,
			"title":     resume.Title,
			"score":     score,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ResumeService", "Failed to publish RESUME_MATCHED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.MatchResumeResponse{
		ResumeId: resume.Id,
		Score:    score,
	}, nil
}

// cosineSimilarity assumes both vectors are unit-normalized, reducing
// the computation to a dot product. Mismatched lengths score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func toResumeResponse(r *entity.Resume) *dto.ResumeResponse {
	return &dto.ResumeResponse{
		Id:        r.Id,
		Title:     r.Title,
		Content:   r.Content,
		Sections:  r.Sections,
		IsPrimary: r.IsPrimary,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
