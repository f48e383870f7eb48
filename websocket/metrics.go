// File: websocket/metrics.go
package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"sports-scheduler/logger"
)

// Namespace for all scheduler metrics
var metricsNamespace = "SportsScheduler"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// metricsEnabled gates the CloudWatch calls; local dev and tests run
// without AWS credentials.
func metricsEnabled() bool {
	return os.Getenv("CLOUDWATCH_METRICS") == "enabled"
}

// PublishActiveConnections pushes the current WebSocket connection count.
func PublishActiveConnections(count int) {
	putMetric("ActiveConnections", float64(count), "Count")
}

// PublishSessionCreated bumps the session-creation counter.
func PublishSessionCreated() {
	putMetric("SessionsCreated", 1, "Count")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled() {
		return
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("Environment"),
						Value: aws.String(appEnv()),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}

func appEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
