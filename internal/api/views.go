package api

import (
	"sync"

	"github.com/khushi-labs/marketwallet/pkg/models"
)

// statusControl is a headless session.View. Instead of a DOM element it
// records the status label for JSON responses, and counts reload requests
// rather than reloading anything.
type statusControl struct {
	mu      sync.Mutex
	text    string
	reloads int
}

func newStatusControl() *statusControl {
	return &statusControl{text: models.DisconnectedLabel}
}

func (c *statusControl) SetStatusText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

func (c *statusControl) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloads++
}

func (c *statusControl) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// modalView is a headless scanner.View recording what the scan modal would
// currently show.
type modalView struct {
	mu          sync.Mutex
	open        bool
	status      string
	resultShown bool
	owner       string
	name        string
}

// modalSnapshot is the JSON shape of the modal state.
type modalSnapshot struct {
	Open        bool   `json:"open"`
	Status      string `json:"status"`
	ResultShown bool   `json:"result_shown"`
	Owner       string `json:"owner,omitempty"`
	Name        string `json:"name,omitempty"`
}

func (v *modalView) ShowModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = true
}

func (v *modalView) HideModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = false
}

func (v *modalView) SetStatusText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
}

func (v *modalView) ShowResult(owner, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultShown = true
	v.owner = owner
	v.name = name
}

func (v *modalView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultShown = false
	v.owner = ""
	v.name = ""
}

func (v *modalView) snapshot() modalSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return modalSnapshot{
		Open:        v.open,
		Status:      v.status,
		ResultShown: v.resultShown,
		Owner:       v.owner,
		Name:        v.name,
	}
}
