package feed

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) Publish(ctx context.Context, orgID string, c Collection) error {
	return f.client.Publish(ctx, Channel(orgID, c), "changed").Err()
}

func (f *RedisFeed) Subscribe(ctx context.Context, orgID string, c Collection) (Subscription, error) {
	ps := f.client.Subscribe(ctx, Channel(orgID, c))
	// Receive wartet auf die Bestätigung, sonst gehen frühe Nachrichten verloren
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSubscription{
		ps:      ps,
		changes: make(chan struct{}, 1),
	}
	go sub.pump()
	return sub, nil
}

type redisSubscription struct {
	ps      *redis.PubSub
	changes chan struct{}
}

func (s *redisSubscription) pump() {
	defer close(s.changes)
	for range s.ps.Channel() {
		// mehrere Änderungen hintereinander werden zu einer zusammengefasst
		select {
		case s.changes <- struct{}{}:
		default:
		}
	}
}

func (s *redisSubscription) Changes() <-chan struct{} {
	return s.changes
}

func (s *redisSubscription) Close() error {
	if err := s.ps.Close(); err != nil {
		log.Warn().Err(err).Msg("Fehler beim Schließen des Pub/Sub-Abos")
		return err
	}
	return nil
}
