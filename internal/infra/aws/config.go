package aws

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"weather-api/pkg/resource"
)

var Config aws.Config

func init() {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(resource.GetString("app.cloud.aws-region")),
	}

	// Custom endpoint supports LocalStack and compatible emulators
	if endpoint := resource.GetString("app.cloud.aws-endpoint"); endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}

	// Explicit credentials take precedence; otherwise the SDK falls back to its
	// default chain (environment variables, IAM roles, etc.)
	if accessKey := resource.GetString("app.cloud.aws-access-key-id"); accessKey != "" {
		if secretKey := resource.GetString("app.cloud.aws-secret-access-key"); secretKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
			))
		}
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	Config = cfg
}
