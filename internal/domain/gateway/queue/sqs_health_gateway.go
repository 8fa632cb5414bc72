package queue

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"weather-api/internal/domain/model"
)

// QueueURLResolver is the minimal SQS surface the health check needs.
type QueueURLResolver interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
}

type sqsHealthGateway struct {
	client    QueueURLResolver
	queueName string
}

var _ HealthGateway = (*sqsHealthGateway)(nil)

// NewSQSHealthGateway creates a queue health gateway that resolves the queue URL
// as a reachability probe.
func NewSQSHealthGateway(client QueueURLResolver, queueName string) HealthGateway {
	return &sqsHealthGateway{
		client:    client,
		queueName: queueName,
	}
}

func (gateway *sqsHealthGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := gateway.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &gateway.queueName,
	})
	if err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": err.Error(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message": string(model.StatusUp),
		},
	}
}
