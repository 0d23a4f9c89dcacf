package service

import (
	"context"
	"time"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/internal/repository/specification"
	"careerpilot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IContactService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ContactResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContactService(uowFactory unitofwork.RepositoryFactory) IContactService {
	return &contactService{
		uowFactory: uowFactory,
	}
}

func (s *contactService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	score := entity.DefaultRelationshipScore
	if req.RelationshipScore != nil {
		score = *req.RelationshipScore
	}

	contact := entity.Contact{
		Id:                uuid.New(),
		Name:              req.Name,
		Email:             req.Email,
		Company:           req.Company,
		Role:              req.Role,
		Notes:             req.Notes,
		RelationshipScore: score,
		UserId:            userId,
		CreatedAt:         time.Now(),
	}

	if err := uow.ContactRepository().Create(ctx, &contact); err != nil {
		return nil, err
	}

	return toContactResponse(&contact), nil
}

func (s *contactService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, serverutils.ErrNotFound("Contact")
	}

	return toContactResponse(contact), nil
}

func (s *contactService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "COALESCE(updated_at, created_at)", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ContactResponse, len(contacts))
	for i, c := range contacts {
		res[i] = toContactResponse(c)
	}
	return res, nil
}

func (s *contactService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, serverutils.ErrNotFound("Contact")
	}

	contact.Name = req.Name
	contact.Email = req.Email
	contact.Company = req.Company
	contact.Role = req.Role
	contact.Notes = req.Notes
	if req.RelationshipScore != nil {
		contact.RelationshipScore = *req.RelationshipScore
	}
	now := time.Now()
	contact.UpdatedAt = &now

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}

	return toContactResponse(contact), nil
}

func (s *contactService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return serverutils.ErrNotFound("Contact")
	}

	return uow.ContactRepository().Delete(ctx, contact.Id)
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		Id:                c.Id,
		Name:              c.Name,
		Email:             c.Email,
		Company:           c.Company,
		Role:              c.Role,
		Notes:             c.Notes,
		RelationshipScore: c.RelationshipScore,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
