package middleware

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kintai/config"
	"kintai/internal/database"
	"kintai/internal/models"
	"kintai/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowAccessLogRepo reads each entry only after later requests have had a
// chance to reuse fasthttp's request buffers.
type slowAccessLogRepo struct {
	mutex   sync.Mutex
	entries []models.AccessLog
}

func (r *slowAccessLogRepo) Create(ctx context.Context, entry *models.AccessLog) error {
	time.Sleep(50 * time.Millisecond)

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *slowAccessLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *slowAccessLogRepo) logged() []models.AccessLog {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]models.AccessLog(nil), r.entries...)
}

func TestAccessLog_EntriesSurviveRequestBufferReuse(t *testing.T) {
	repo := &slowAccessLogRepo{}
	m := New(database.DB{}, config.Config{}, repositories.Repository{AccessLog: repo})

	app := fiber.New()
	app.Use(m.AccessLog())
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	paths := []string{
		"/first-request-path",
		"/attendance/status",
		"/another-longer-path-here",
		"/hb",
	}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	require.Eventually(t, func() bool {
		return len(repo.logged()) == len(paths)
	}, 2*time.Second, 10*time.Millisecond)

	want := make(map[string]bool, len(paths))
	for _, path := range paths {
		want["GET "+path] = true
	}
	for _, entry := range repo.logged() {
		assert.True(t, want[entry.Method+" "+entry.Path],
			"logged entry %q %q does not match any request made", entry.Method, entry.Path)
	}
}
