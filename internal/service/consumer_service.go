package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/repository/specification"
	"careerpilot-be/internal/repository/unitofwork"
	"careerpilot-be/pkg/embedding"
	"careerpilot-be/pkg/events"
	pktNats "careerpilot-be/pkg/nats"
	"careerpilot-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestResumeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("ConsumerService", "Processing resume embedding", map[string]interface{}{"resume_id": payload.ResumeId})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Fetch globally: the worker runs outside any user's session
	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: payload.ResumeId})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to load resume", map[string]interface{}{"resume_id": payload.ResumeId, "error": err.Error()})
		msg.Nack() // Retriable
		return
	}
	if resume == nil {
		// Deleted before the worker got to it
		msg.Ack()
		return
	}

	content := buildResumeDocument(resume)

	// Chunk to stay under embedding input limits, then average the chunk
	// vectors into one resume-level vector.
	chunks := utils.SplitText(content, 1500, 200)

	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("ConsumerService", "Embedding generation failed", map[string]interface{}{
				"resume_id": payload.ResumeId,
				"chunk":     i,
				"error":     err.Error(),
			})
			msg.Nack()
			return
		}
		vectors = append(vectors, res.Embedding.Values)
	}

	combined := averageVectors(vectors)
	if combined == nil {
		cs.logger.Warn("ConsumerService", "Resume produced no embedding", map[string]interface{}{"resume_id": payload.ResumeId})
		msg.Ack()
		return
	}

	newEmbedding := &entity.ResumeEmbedding{
		Id:             uuid.New(),
		Document:       content,
		EmbeddingValue: combined,
		ResumeId:       resume.Id,
		UserId:         resume.UserId,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("ConsumerService", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ResumeEmbeddingRepository().DeleteByResumeId(ctx, resume.Id); err != nil {
		cs.logger.Error("ConsumerService", "Failed to delete stale embedding", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if err := uow.ResumeEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		cs.logger.Error("ConsumerService", "Failed to store embedding", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("ConsumerService", "Failed to commit embedding", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewEvent("RESUME_ANALYZED", map[string]interface{}{
			"user_id":     resume.UserId,
			"resume_id":   resume.Id,
			"title":       resume.Title,
			"entity_type": "resume",
			"entity_id":   resume.Id,
		})
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish RESUME_ANALYZED event", map[string]interface{}{"error": err.Error()})
		}
	}

	cs.logger.Info("ConsumerService", "Resume processed", map[string]interface{}{
		"resume_id": resume.Id,
		"chunks":    len(chunks),
	})
	msg.Ack()
}

func buildResumeDocument(resume *entity.Resume) string {
	doc := fmt.Sprintf("Resume Title: %s\n\n%s", resume.Title, resume.Content)

	if len(resume.Sections) > 0 {
		var sections map[string]string
		if err := json.Unmarshal(resume.Sections, &sections); err == nil {
			for heading, body := range sections {
				doc += fmt.Sprintf("\n\n%s:\n%s", heading, body)
			}
		}
	}
	return doc
}

// averageVectors averages per-chunk vectors and re-normalizes so the
// result stays usable for cosine scoring.
func averageVectors(vectors [][]float32) []float32 {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil
	}
	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, vec := range vectors {
		if len(vec) != dim {
			continue
		}
		for i, v := range vec {
			sum[i] += float64(v)
		}
	}

	var magnitude float64
	for _, v := range sum {
		magnitude += v * v
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return nil
	}

	out := make([]float32, dim)
	for i, v := range sum {
		out[i] = float32(v / magnitude)
	}
	return out
}
