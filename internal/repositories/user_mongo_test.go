package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func setupMongoContainer(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017")

	client, err := mongo.Connect(options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	teardown := func() {
		client.Disconnect(ctx)
		container.Terminate(ctx)
	}

	return client.Database("testdb"), teardown
}

func TestUserMongoRepository(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	repo := NewUserMongoRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	bob := newTestUser(t, "bob", "bob@x.com")
	require.NoError(t, repo.Create(ctx, bob))

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)
		assert.Equal(t, bob.PasswordSalt, got.PasswordSalt)
		assert.True(t, got.ValidPassword("pw123"))
	})

	t.Run("GetByIdentifier", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "Bob@X.COM")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)

		_, err = repo.GetByIdentifier(ctx, "nobody")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("Duplicate", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, newTestUser(t, "bob", "b2@x.com")), services.ErrDuplicateIdentifier)
		assert.ErrorIs(t, repo.Create(ctx, newTestUser(t, "b2", "bob@x.com")), services.ErrDuplicateIdentifier)
	})

	t.Run("Update", func(t *testing.T) {
		bob.FullName = "Robert"
		require.NoError(t, repo.Update(ctx, bob))

		got, err := repo.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "Robert", got.FullName)

		assert.ErrorIs(t, repo.Update(ctx, newTestUser(t, "ghost", "ghost@x.com")), services.ErrNotFound)
	})

	t.Run("MarkVerified", func(t *testing.T) {
		require.NoError(t, repo.MarkVerified(ctx, bob.ID))

		got, err := repo.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)

		assert.ErrorIs(t, repo.MarkVerified(ctx, uuid.New()), services.ErrNotFound)
	})
}
