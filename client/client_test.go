package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/config"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/dto"
	"github.com/princinho/stonevitrine/models"
	"github.com/princinho/stonevitrine/notify"
	"github.com/princinho/stonevitrine/routes"
	"github.com/princinho/stonevitrine/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAPI(t *testing.T) (*Client, *database.Stores) {
	t.Helper()
	cfg := &config.Configuration{
		JwtSecret:      "test-secret",
		SessionTTLDays: 30,
		AdminUser:      "admin",
		AdminPass:      "00000000",
		UploadDir:      filepath.Join(t.TempDir(), "uploads"),
	}
	stores := database.NewMemoryStores()
	_, err := utils.SyncAdminUser(context.Background(), stores.Users, "admin", "00000000", true)
	require.NoError(t, err)

	dispatcher := notify.NewDispatcher(notify.LogNotifier{}, "", time.Second)
	srv := httptest.NewServer(routes.NewRouter(routes.Deps{Config: cfg, Stores: stores, Dispatcher: dispatcher}))
	t.Cleanup(func() {
		srv.Close()
		dispatcher.Wait()
	})
	return New(srv.URL+"/api", 5*time.Second), stores
}

func TestPublicReads(t *testing.T) {
	c, stores := newAPI(t)
	ctx := context.Background()
	now := time.Now().UTC()

	active := &models.Collection{Id: bson.NewObjectID(), Name: "Granit", IsActive: true, Features: []string{}, CreatedAt: now}
	hidden := &models.Collection{Id: bson.NewObjectID(), Name: "Ancien", IsActive: false, Features: []string{}, CreatedAt: now}
	require.NoError(t, stores.Collections.Insert(ctx, active))
	require.NoError(t, stores.Collections.Insert(ctx, hidden))

	list, err := c.ActiveCollections(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Granit", list[0].Name)

	got, err := c.Collection(ctx, active.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, active.Id, got.Id)

	_, err = c.Collection(ctx, bson.NewObjectID().Hex())
	assert.True(t, IsNotFound(err))
	_, err = c.Collection(ctx, hidden.Id.Hex())
	assert.True(t, IsNotFound(err), "inactive collections are hidden without a session")

	_, err = c.Collections(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	s, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Liteos", s.SiteName)
}

func TestSendMessageAndLike(t *testing.T) {
	c, stores := newAPI(t)
	ctx := context.Background()

	m, err := c.SendMessage(ctx, dto.CreateMessageDTO{Name: "A", Email: "a@b.com", Subject: "S", Message: "M"})
	require.NoError(t, err)
	assert.False(t, m.Read)

	_, err = c.SendMessage(ctx, dto.CreateMessageDTO{Name: "A", Email: "bad", Subject: "S", Message: "M"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	p := &models.Project{Id: bson.NewObjectID(), Title: "Cuisine", Materials: []string{}, CreatedAt: time.Now().UTC()}
	require.NoError(t, stores.Projects.Insert(ctx, p))
	likes, err := c.LikeProject(ctx, p.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
}

func TestDashboardMatchesServerAggregation(t *testing.T) {
	c, _ := newAPI(t)
	ctx := context.Background()

	_, err := c.Dashboard(ctx)
	assert.Error(t, err, "dashboard needs a session")

	for i := 0; i < 7; i++ {
		_, err := c.SendMessage(ctx, dto.CreateMessageDTO{Name: "A", Email: "a@b.com", Subject: "S", Message: "M"})
		require.NoError(t, err)
	}
	_, err = c.SubmitTestimonial(ctx, dto.CreateTestimonialDTO{Name: "J", Email: "j@b.com", Rating: 5, Message: "Top"})
	require.NoError(t, err)

	require.Error(t, c.Login(ctx, "admin", "wrong"))
	require.NoError(t, c.Login(ctx, "admin", "00000000"))

	local, err := c.Dashboard(ctx)
	require.NoError(t, err)
	server, err := c.ServerDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(7), local.Messages)
	assert.Equal(t, int64(7), local.UnreadMessages)
	assert.Equal(t, int64(1), local.PendingTestimonials)
	assert.Len(t, local.RecentMessages, 5)
	assert.Equal(t, server.Messages, local.Messages)
	assert.Equal(t, server.PendingTestimonials, local.PendingTestimonials)
	assert.Equal(t, server.UnreadMessages, local.UnreadMessages)
}
