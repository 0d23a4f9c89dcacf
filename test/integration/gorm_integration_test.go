package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/repository/specification"
	"careerpilot-be/internal/repository/unitofwork"
	"careerpilot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ContactRepository())
	assert.NotNil(t, uow.ResumeRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Contact Ownership Isolation", func(t *testing.T) {
		ctx := context.Background()

		owner := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   "active",
		}
		stranger := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Other Test User",
			Status:   "active",
		}
		require.NoError(t, uow.UserRepository().Create(ctx, owner))
		require.NoError(t, uow.UserRepository().Create(ctx, stranger))

		contact := &entity.Contact{
			Id:                uuid.New(),
			Name:              "Recruiter Jane",
			Email:             "jane@agency.test",
			Company:           "Agency",
			RelationshipScore: 50,
			UserId:            owner.Id,
			CreatedAt:         time.Now(),
		}
		require.NoError(t, uow.ContactRepository().Create(ctx, contact))

		// Owner sees the row
		found, err := uow.ContactRepository().FindOne(ctx,
			specification.ByID{ID: contact.Id},
			specification.OwnedBy{UserID: owner.Id},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Recruiter Jane", found.Name)

		// Another user scoping the same id gets nothing, not an error
		hidden, err := uow.ContactRepository().FindOne(ctx,
			specification.ByID{ID: contact.Id},
			specification.OwnedBy{UserID: stranger.Id},
		)
		require.NoError(t, err)
		assert.Nil(t, hidden)

		// Cleanup
		assert.NoError(t, uow.ContactRepository().Delete(ctx, contact.Id))
	})
}
