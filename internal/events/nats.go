package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/config"
)

// NATSConfig holds NATS client configuration
type NATSConfig struct {
	URL           string
	Subject       string
	RetryAttempts int
	RetryDelay    time.Duration
}

// NATSConfigFrom builds client settings from the events section
func NATSConfigFrom(cfg config.EventsConfig) NATSConfig {
	return NATSConfig{
		URL:           cfg.NATSURL,
		Subject:       cfg.Subject,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// NATSPublisher publishes season summaries over core NATS
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	logger  *logrus.Entry
}

// NewNATSPublisher connects to NATS
func NewNATSPublisher(cfg NATSConfig, logger *logrus.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = logrus.New()
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name("mlb-edge"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(cfg.RetryAttempts),
		nats.ReconnectWait(cfg.RetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{
		nc:      nc,
		subject: cfg.Subject,
		logger:  logger.WithField("component", "events"),
	}, nil
}

// PublishSeasonSummary publishes the summary and flushes it to the server
func (p *NATSPublisher) PublishSeasonSummary(ctx context.Context, summary SeasonSummary) error {
	data, err := encodeSummary(summary)
	if err != nil {
		return err
	}

	subject := summarySubject(p.subject, summary)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush message: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject": subject,
		"season":  summary.Season,
		"run_id":  summary.RunID,
	}).Debug("Season summary published")
	return nil
}

// IsConnected returns true if connected to NATS
func (p *NATSPublisher) IsConnected() bool {
	return p.nc != nil && p.nc.IsConnected()
}

// Close drains and closes the NATS connection
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
		}
	}
}

// NewPublisher returns a NATS publisher when events are enabled, otherwise a no-op
func NewPublisher(cfg config.EventsConfig, logger *logrus.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(NATSConfigFrom(cfg), logger)
}
