package processor

import (
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/pubsub"
)

// Processor fans scheduling outcomes out to the notification and event
// channels and records the associated metrics.
type Processor struct {
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
