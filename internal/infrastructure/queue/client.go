package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
)

// Client enqueues background tasks for cmd/worker.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) EnqueueExport(ctx context.Context, payload shared.ExportPlaylistPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal export payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeExportPlaylist, data)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue export task: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
