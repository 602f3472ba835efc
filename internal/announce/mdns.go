// Package announce advertises the most recently acquired MSF time over
// mDNS/DNS-SD, so other devices on the same LAN segment can discover a
// host that already has a fresh wall-clock fix without polling it. This is
// a supplemental feature beyond spec.md's distilled scope (see
// SPEC_FULL.md's Domain Stack section); it is fire-and-forget and never
// feeds back into acquisition.
package announce

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"

	"github.com/tam-radio/msftime/internal/msf"
)

const serviceType = "_msf-time._tcp"

// Announcer republishes the latest AcquisitionResult under a fixed
// service instance name.
type Announcer struct {
	name      string
	port      int
	responder dnssd.Responder
	service   dnssd.Service
}

// New creates a responder and adds the service, but does not start
// responding yet; call Run to do that.
func New(name string, port int) (*Announcer, error) {
	if name == "" {
		name = "msftime"
	}

	cfg := dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: serviceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("announce: create service: %w", err)
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("announce: create responder: %w", err)
	}

	if _, err := rp.Add(sv); err != nil {
		return nil, fmt.Errorf("announce: add service: %w", err)
	}

	return &Announcer{name: name, port: port, responder: rp, service: sv}, nil
}

// Run blocks responding to mDNS queries until ctx is cancelled.
func (a *Announcer) Run(ctx context.Context) error {
	return a.responder.Respond(ctx)
}

// Update republishes the given result's calendar fields as TXT records.
// It must be called after Run has started responding.
func (a *Announcer) Update(res msf.AcquisitionResult) {
	a.service.Text = map[string]string{
		"time":     res.Time().Format("2006-01-02T15:04:05Z"),
		"dow":      fmt.Sprintf("%d", res.DayOfWeek),
		"checksum": fmt.Sprintf("%t", res.ChecksumPassed),
	}
}
