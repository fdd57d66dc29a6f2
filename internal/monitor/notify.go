// Package monitor is the change-detection and notification core. On a fast
// tick it samples one batched Torn snapshot, computes edge-triggered
// transitions against in-memory previous-tick state, and dedupes the event
// and inbox feeds against persisted watermarks; on a slow tick it checks
// company stock and employee activity. All resulting notifications go
// through a dispatcher that isolates per-record delivery failures.
//
// Pipeline per fast tick: fetch → detect transitions → classify events →
// classify inbox → dispatch.
package monitor

import (
	"context"
	"fmt"

	"github.com/tornsuite/consigliere/internal/torn"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	travelImminentSeconds = 120
	studyImminentSeconds  = 3600
	lowStockThreshold     = 50
	inactiveDaysThreshold = 3
	inboxPreviewLimit     = 200
)

// Persisted state keys.
const (
	KeyLastEventTimestamp   = "last_event_timestamp"
	KeyLastMessageTimestamp = "last_message_timestamp"
	KeyCompanyEnabled       = "company_enabled"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Category identifies what kind of alert a notification is.
type Category string

const (
	CategoryEnergyFull      Category = "energy_full"
	CategoryNerveFull       Category = "nerve_full"
	CategoryHospitalExit    Category = "hospital_exit"
	CategoryDrugReady       Category = "drug_ready"
	CategoryBoosterReady    Category = "booster_ready"
	CategoryTravelLanding   Category = "travel_landing"
	CategoryStudyDone       Category = "study_done"
	CategoryPurchase        Category = "purchase"
	CategoryMugged          Category = "mugged"
	CategoryAttacked        Category = "attacked"
	CategoryHospitalized    Category = "hospitalized"
	CategoryGenericEvent    Category = "event"
	CategoryInbox           Category = "inbox"
	CategoryStockEmpty      Category = "stock_empty"
	CategoryStockLow        Category = "stock_low"
	CategoryInactiveWorker  Category = "inactive_worker"
	CategoryCompanyDisabled Category = "company_disabled"
)

// Notification is one user-facing alert ready for delivery.
type Notification struct {
	Category Category
	Icon     string
	Title    string
	Body     string
}

// Text renders the notification in the chat markup the sender expects.
func (n Notification) Text() string {
	return fmt.Sprintf("%s *%s*\n\n%s", n.Icon, n.Title, n.Body)
}

// --------------------------------------------------------------------------
// Collaborator interfaces
// --------------------------------------------------------------------------

// Fetcher retrieves raw documents from the game API.
type Fetcher interface {
	FetchUser(ctx context.Context, selections string) (torn.RawDocument, error)
	FetchCompany(ctx context.Context, selections string) (torn.RawDocument, error)
}

// Sender delivers one formatted notification to the authorized principal.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// StateStore is the durable watermark and feature-flag store. Getters fall
// back to the given default instead of failing.
type StateStore interface {
	GetInt64(key string, def int64) int64
	SetInt64(key string, value int64) error
	GetBool(key string, def bool) bool
	SetBool(key string, value bool) error
}
