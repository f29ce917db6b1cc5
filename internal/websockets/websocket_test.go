package websockets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientStatus_ConcurrentReadsDuringHandshake(t *testing.T) {
	client := &Client{
		ID:   "test-client",
		send: make(chan Message, 1),
	}

	assert.Equal(t, STATUS_UNAUTHENTICATED, client.Status())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				status := client.Status()
				assert.True(t, status == STATUS_UNAUTHENTICATED || status == STATUS_AUTHENTICATED)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		client.setStatus(STATUS_AUTHENTICATED)
	}()

	wg.Wait()
	assert.Equal(t, STATUS_AUTHENTICATED, client.Status())
}
