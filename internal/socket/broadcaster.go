package socket

import (
	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
)

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// ============================================
// Project Broadcasting
// ============================================

// BroadcastProjectCreated tells every open dashboard that the store grew.
func (b *Broadcaster) BroadcastProjectCreated(project map[string]interface{}) {
	logging.C("broadcaster").WithField("project_id", project["id"]).Debug("project created")
	b.hub.SendToRoom(DashboardRoom, MessageProjectCreated, map[string]interface{}{
		"project": project,
	}, "")
}
