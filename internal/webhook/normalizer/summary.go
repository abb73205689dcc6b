package normalizer

// Summary is the flattened, display-ready view of one event type.
// Each known event type has its own struct; unknown types have none.
type Summary interface {
	EventType() string
}

// Summarizer builds the Summary for one event type from the raw body.
type Summarizer func(body []byte) (Summary, error)

type PullRequestSummary struct {
	Action             string   `json:"action"`
	Number             int      `json:"number"`
	Title              string   `json:"title"`
	State              string   `json:"state"`
	Draft              bool     `json:"draft"`
	Merged             bool     `json:"merged"`
	User               string   `json:"user"`
	HeadBranch         string   `json:"head_branch"`
	BaseBranch         string   `json:"base_branch"`
	Mergeable          *bool    `json:"mergeable"`
	MergeableState     string   `json:"mergeable_state"`
	Commits            int      `json:"commits"`
	Additions          int      `json:"additions"`
	Deletions          int      `json:"deletions"`
	ChangedFiles       int      `json:"changed_files"`
	RequestedReviewers []string `json:"requested_reviewers"`
	Labels             []string `json:"labels"`
	Milestone          *string  `json:"milestone"`
	HTMLURL            string   `json:"html_url"`
	DiffURL            string   `json:"diff_url"`
	PatchURL           string   `json:"patch_url"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func (PullRequestSummary) EventType() string { return EventPullRequest }

type PushSummary struct {
	Branch     string `json:"branch"`
	Commits    int    `json:"commits"`
	Forced     bool   `json:"forced"`
	HeadCommit string `json:"head_commit,omitempty"`
}

func (PushSummary) EventType() string { return EventPush }

type IssueSummary struct {
	Action string `json:"action"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   string `json:"user"`
}

func (IssueSummary) EventType() string { return EventIssues }

type IssueCommentSummary struct {
	Action    string `json:"action"`
	Number    int    `json:"number"`
	Commenter string `json:"commenter"`
}

func (IssueCommentSummary) EventType() string { return EventIssueComment }

type ReviewSummary struct {
	Action   string `json:"action"`
	Number   int    `json:"number"`
	State    string `json:"state"`
	Reviewer string `json:"reviewer"`
}

func (ReviewSummary) EventType() string { return EventPullRequestReview }

type StarSummary struct {
	Action    string  `json:"action"`
	StarredAt *string `json:"starred_at"`
}

func (StarSummary) EventType() string { return EventStar }

type WatchSummary struct {
	Action string `json:"action"`
}

func (WatchSummary) EventType() string { return EventWatch }

type ForkSummary struct {
	Forkee string `json:"forkee"`
}

func (ForkSummary) EventType() string { return EventFork }

type ReleaseSummary struct {
	Action     string `json:"action"`
	Name       string `json:"name"`
	Tag        string `json:"tag"`
	Prerelease bool   `json:"prerelease"`
}

func (ReleaseSummary) EventType() string { return EventRelease }

type SecurityAdvisorySummary struct {
	Action     string `json:"action"`
	AdvisoryID string `json:"advisory_id"`
	Severity   string `json:"severity"`
}

func (SecurityAdvisorySummary) EventType() string { return EventSecurityAdvisory }

type VulnerabilityAlertSummary struct {
	Action      string `json:"action"`
	AlertNumber int    `json:"alert_number"`
	AlertState  string `json:"alert_state"`
}

func (VulnerabilityAlertSummary) EventType() string { return EventRepositoryVulnerabilityAlert }

type PingSummary struct {
	Zen    string `json:"zen"`
	HookID int64  `json:"hook_id"`
}

func (PingSummary) EventType() string { return EventPing }
