package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// initialRetryDelay: Pause vor dem zweiten Versuch des ersten Snapshots.
var initialRetryDelay = 500 * time.Millisecond

// Loader lädt den aktuellen Zustand einer Collection.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Stream liefert sofort einen vollständigen Snapshot und danach einen pro Änderung.
// Der Kanal wird geschlossen, wenn ctx endet oder das Abo abbricht.
// Scheitert der erste Snapshot auch im zweiten Versuch, wird der Kanal ohne Snapshot geschlossen.
// Spätere Ladefehler werden geloggt und übersprungen, der nächste Change versucht es erneut.
func Stream[T any](ctx context.Context, sub Subscriber, orgID string, c Collection, load Loader[T]) (<-chan []T, error) {
	subscription, err := sub.Subscribe(ctx, orgID, c)
	if err != nil {
		return nil, err
	}

	out := make(chan []T)
	go func() {
		defer close(out)
		defer subscription.Close()

		emit := func(snapshot []T) bool {
			select {
			case out <- snapshot:
				return true
			case <-ctx.Done():
				return false
			}
		}

		send := func() bool {
			snapshot, err := load(ctx)
			if err != nil {
				log.Warn().Err(err).Str("collection", string(c)).Msg("Snapshot konnte nicht geladen werden")
				return true
			}
			return emit(snapshot)
		}

		initial, err := load(ctx)
		if err != nil {
			log.Warn().Err(err).Str("collection", string(c)).Msg("Erster Snapshot fehlgeschlagen, neuer Versuch")
			select {
			case <-time.After(initialRetryDelay):
			case <-ctx.Done():
				return
			}
			if initial, err = load(ctx); err != nil {
				log.Error().Err(err).Str("org_id", orgID).Str("collection", string(c)).Msg("Erster Snapshot nicht ladbar, Stream wird geschlossen")
				return
			}
		}
		if !emit(initial) {
			return
		}

		changes := subscription.Changes()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if !send() {
					return
				}
			}
		}
	}()

	return out, nil
}
