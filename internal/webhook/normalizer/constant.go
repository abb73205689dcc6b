package normalizer

// GitHub event names as sent in the X-GitHub-Event header.
const (
	EventPush                         = "push"
	EventPullRequest                  = "pull_request"
	EventPullRequestReview            = "pull_request_review"
	EventIssues                       = "issues"
	EventIssueComment                 = "issue_comment"
	EventStar                         = "star"
	EventWatch                        = "watch"
	EventFork                         = "fork"
	EventRelease                      = "release"
	EventSecurityAdvisory             = "security_advisory"
	EventRepositoryVulnerabilityAlert = "repository_vulnerability_alert"
	EventPing                         = "ping"
)

// SummaryKey is the payload key the type-specific summary is stored under.
const SummaryKey = "summary"

const branchRefPrefix = "refs/heads/"

// sensitiveFields are removed from every stored payload.
var sensitiveFields = []string{
	"installation.access_tokens_url",
	"installation.repositories_url",
	"sender.gravatar_id",
	"repository.ssh_url",
	"repository.clone_url",
	"repository.git_url",
	"repository.private_clone_url",
}
