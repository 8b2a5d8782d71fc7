package feed

import (
	"context"
	"fmt"
)

type Collection string

const (
	Cases            Collection = "cases"
	ApprovalRequests Collection = "approvalRequests"
	Notifications    Collection = "notifications"
	CostCenters      Collection = "costCenters"
)

func (c Collection) IsValid() bool {
	switch c {
	case Cases, ApprovalRequests, Notifications, CostCenters:
		return true
	}
	return false
}

// Channel liefert den Pub/Sub-Kanal einer Collection innerhalb einer Organisation.
func Channel(orgID string, c Collection) string {
	return fmt.Sprintf("feed:%s:%s", orgID, c)
}

// Publisher meldet, dass sich eine Collection geändert hat. Die Nachricht trägt keine Daten,
// Abonnenten laden jeweils einen vollständigen Snapshot neu.
type Publisher interface {
	Publish(ctx context.Context, orgID string, c Collection) error
}

type Subscription interface {
	Changes() <-chan struct{}
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, orgID string, c Collection) (Subscription, error)
}
