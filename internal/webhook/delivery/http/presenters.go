package http

import (
	"time"

	"repo-pulse/internal/model"
	"repo-pulse/internal/webhook"
)

// Header names set by GitHub on every delivery.
const (
	HeaderEvent     = "X-GitHub-Event"
	HeaderDelivery  = "X-GitHub-Delivery"
	HeaderSignature = "X-Hub-Signature-256"

	headerTotalCount = "X-Total-Count"
)

const (
	messageReceived = "Webhook received successfully"
	messageCleared  = "All events cleared"
	messageReady    = "GitHub Webhook endpoint is ready : "

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// --- Request DTOs ---

type receiveReq struct {
	EventType  string
	DeliveryID string
	Signature  string
	ClientIP   string
	Body       []byte
}

func (r receiveReq) toInput() webhook.IngestInput {
	return webhook.IngestInput{
		EventType:  r.EventType,
		DeliveryID: r.DeliveryID,
		Signature:  r.Signature,
		ClientIP:   r.ClientIP,
		Body:       r.Body,
	}
}

// ---

type listReq struct {
	Type       string `form:"type"`
	Repository string `form:"repository"`
	Limit      int    `form:"limit"`
}

func (r listReq) validate() error {
	if r.Limit < 0 {
		return errInvalidLimit
	}
	return nil
}

func (r listReq) toInput() webhook.ListInput {
	return webhook.ListInput{
		Type:       r.Type,
		Repository: r.Repository,
		Limit:      r.Limit,
	}
}

// --- Response DTOs ---

type ackResp struct {
	Message   string `json:"message"`
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Timestamp string `json:"timestamp"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

func (h *handler) newAckResp(out webhook.IngestOutput) ackResp {
	return ackResp{
		Message:   messageReceived,
		EventID:   out.Event.ID,
		EventType: out.Event.Type,
		Timestamp: out.Event.Timestamp.UTC().Format(timestampLayout),
		Duplicate: out.Duplicate,
	}
}

type readyResp struct {
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	Methods   []string `json:"methods"`
}

func (h *handler) newReadyResp(url string, now time.Time) readyResp {
	return readyResp{
		Message:   messageReady + url,
		Timestamp: now.UTC().Format(timestampLayout),
		Methods:   []string{"GET", "POST"},
	}
}

// listResp is a bare JSON array; an empty store renders as [].
type listResp []model.Event

func (h *handler) newListResp(out webhook.ListOutput) listResp {
	if out.Events == nil {
		return listResp{}
	}
	return listResp(out.Events)
}

type statsResp struct {
	Count    int            `json:"count"`
	Capacity int            `json:"capacity"`
	ByType   map[string]int `json:"by_type"`
}

func (h *handler) newStatsResp(out webhook.StatsOutput) statsResp {
	byType := out.ByType
	if byType == nil {
		byType = map[string]int{}
	}
	return statsResp{
		Count:    out.Count,
		Capacity: out.Capacity,
		ByType:   byType,
	}
}

type messageResp struct {
	Message string `json:"message"`
}
