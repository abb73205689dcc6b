package webhook

import "repo-pulse/internal/model"

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret           string   // Shared secret for signature verification
	RequireSignature bool     // Reject unsigned deliveries instead of flagging them
	AllowedIPs       []string // IP whitelist (optional)
	RateLimitPerMin  int      // Max requests per minute per client, 0 disables
}

// Config holds the ingestion settings of the webhook domain.
type Config struct {
	Security         SecurityConfig
	DedupeDeliveries bool // acknowledge redelivered delivery ids without storing them again
}

// --- UseCase Inputs ---

// IngestInput is one raw delivery as received on the wire.
type IngestInput struct {
	EventType  string
	DeliveryID string
	Signature  string
	ClientIP   string
	Body       []byte
}

type ListInput struct {
	Type       string
	Repository string
	Limit      int // 0 means no limit
}

// --- UseCase Outputs ---

type IngestOutput struct {
	Event     model.Event
	Duplicate bool // the delivery id was already stored; Event is the original
}

type ListOutput struct {
	Events []model.Event
	Total  int // store size, regardless of filters
}

type StatsOutput struct {
	Count    int
	Capacity int
	ByType   map[string]int
}

// Ingestion outcomes, used as metric labels.
const (
	OutcomeStored            = "stored"
	OutcomeDuplicate         = "duplicate"
	OutcomeRejectedConfig    = "rejected_config"
	OutcomeRejectedSignature = "rejected_signature"
	OutcomeRejectedPayload   = "rejected_payload"
	OutcomeRateLimited       = "rate_limited"
	OutcomeIPDenied          = "ip_denied"
)
