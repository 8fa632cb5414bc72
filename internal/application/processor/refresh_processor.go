package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/log"
)

// RefreshProcessor consumes cache refresh messages and re-fetches each key from the
// provider, keeping hot entries warm after TTL expiry.
type RefreshProcessor struct {
	weatherUseCase weather.UseCase
}

func NewRefreshProcessor(weatherUseCase weather.UseCase) *RefreshProcessor {
	return &RefreshProcessor{weatherUseCase: weatherUseCase}
}

// HandleMessage implements the sqs.Handler interface
func (p *RefreshProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message with nil body")
	}

	var message model.RefreshMessage
	if err := json.Unmarshal([]byte(*msg.Body), &message); err != nil {
		return fmt.Errorf("failed to unmarshal refresh message: %w", err)
	}

	if err := p.weatherUseCase.Refresh(ctx, message); err != nil {
		return fmt.Errorf("failed to refresh %s: %w", message.CacheKey, err)
	}

	log.Infof("Refreshed cache entry %s (request %s)", message.CacheKey, message.RequestID)
	return nil
}
