package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

type login struct {
	Login string `json:"login"`
}

// defaultSummarizers is the built-in GitHub event table.
func defaultSummarizers() map[string]Summarizer {
	return map[string]Summarizer{
		EventPullRequest:                  summarizePullRequest,
		EventPush:                         summarizePush,
		EventIssues:                       summarizeIssue,
		EventIssueComment:                 summarizeIssueComment,
		EventPullRequestReview:            summarizeReview,
		EventStar:                         summarizeStar,
		EventWatch:                        summarizeWatch,
		EventFork:                         summarizeFork,
		EventRelease:                      summarizeRelease,
		EventSecurityAdvisory:             summarizeSecurityAdvisory,
		EventRepositoryVulnerabilityAlert: summarizeVulnerabilityAlert,
		EventPing:                         summarizePing,
	}
}

func summarizePullRequest(body []byte) (Summary, error) {
	var event struct {
		Action      string `json:"action"` // opened, closed, synchronize, etc.
		Number      int    `json:"number"`
		PullRequest struct {
			Title string `json:"title"`
			State string `json:"state"`
			Draft bool   `json:"draft"`
			User  login  `json:"user"`
			Head  struct {
				Ref string `json:"ref"`
			} `json:"head"`
			Base struct {
				Ref string `json:"ref"`
			} `json:"base"`
			Merged             bool    `json:"merged"`
			Mergeable          *bool   `json:"mergeable"` // null while GitHub computes it
			MergeableState     string  `json:"mergeable_state"`
			Commits            int     `json:"commits"`
			Additions          int     `json:"additions"`
			Deletions          int     `json:"deletions"`
			ChangedFiles       int     `json:"changed_files"`
			RequestedReviewers []login `json:"requested_reviewers"`
			Labels             []struct {
				Name string `json:"name"`
			} `json:"labels"`
			Milestone *struct {
				Title string `json:"title"`
			} `json:"milestone"`
			HTMLURL   string `json:"html_url"`
			DiffURL   string `json:"diff_url"`
			PatchURL  string `json:"patch_url"`
			CreatedAt string `json:"created_at"`
			UpdatedAt string `json:"updated_at"`
		} `json:"pull_request"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	pr := event.PullRequest
	reviewers := make([]string, 0, len(pr.RequestedReviewers))
	for _, r := range pr.RequestedReviewers {
		reviewers = append(reviewers, r.Login)
	}
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.Name)
	}
	var milestone *string
	if pr.Milestone != nil {
		title := pr.Milestone.Title
		milestone = &title
	}

	return PullRequestSummary{
		Action:             event.Action,
		Number:             event.Number,
		Title:              pr.Title,
		State:              pr.State,
		Draft:              pr.Draft,
		Merged:             pr.Merged,
		User:               pr.User.Login,
		HeadBranch:         pr.Head.Ref,
		BaseBranch:         pr.Base.Ref,
		Mergeable:          pr.Mergeable,
		MergeableState:     pr.MergeableState,
		Commits:            pr.Commits,
		Additions:          pr.Additions,
		Deletions:          pr.Deletions,
		ChangedFiles:       pr.ChangedFiles,
		RequestedReviewers: reviewers,
		Labels:             labels,
		Milestone:          milestone,
		HTMLURL:            pr.HTMLURL,
		DiffURL:            pr.DiffURL,
		PatchURL:           pr.PatchURL,
		CreatedAt:          pr.CreatedAt,
		UpdatedAt:          pr.UpdatedAt,
	}, nil
}

func summarizePush(body []byte) (Summary, error) {
	var event struct {
		Ref        string            `json:"ref"`
		Forced     bool              `json:"forced"`
		Commits    []json.RawMessage `json:"commits"`
		HeadCommit *struct {
			ID string `json:"id"`
		} `json:"head_commit"` // null on branch deletion
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse push event: %w", err)
	}

	s := PushSummary{
		Branch:  strings.TrimPrefix(event.Ref, branchRefPrefix),
		Commits: len(event.Commits),
		Forced:  event.Forced,
	}
	if event.HeadCommit != nil {
		s.HeadCommit = event.HeadCommit.ID
	}
	return s, nil
}

func summarizeIssue(body []byte) (Summary, error) {
	var event struct {
		Action string `json:"action"`
		Issue  struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
			State  string `json:"state"`
			User   login  `json:"user"`
		} `json:"issue"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse issue event: %w", err)
	}

	return IssueSummary{
		Action: event.Action,
		Number: event.Issue.Number,
		Title:  event.Issue.Title,
		State:  event.Issue.State,
		User:   event.Issue.User.Login,
	}, nil
}

func summarizeIssueComment(body []byte) (Summary, error) {
	var event struct {
		Action string `json:"action"`
		Issue  struct {
			Number int `json:"number"`
		} `json:"issue"`
		Comment struct {
			User login `json:"user"`
		} `json:"comment"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse issue comment event: %w", err)
	}

	return IssueCommentSummary{
		Action:    event.Action,
		Number:    event.Issue.Number,
		Commenter: event.Comment.User.Login,
	}, nil
}

func summarizeReview(body []byte) (Summary, error) {
	var event struct {
		Action      string `json:"action"`
		PullRequest struct {
			Number int `json:"number"`
		} `json:"pull_request"`
		Review struct {
			State string `json:"state"`
			User  login  `json:"user"`
		} `json:"review"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request review event: %w", err)
	}

	return ReviewSummary{
		Action:   event.Action,
		Number:   event.PullRequest.Number,
		State:    event.Review.State,
		Reviewer: event.Review.User.Login,
	}, nil
}

func summarizeStar(body []byte) (Summary, error) {
	var event struct {
		Action    string  `json:"action"`
		StarredAt *string `json:"starred_at"` // null when a star is removed
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse star event: %w", err)
	}

	return StarSummary{Action: event.Action, StarredAt: event.StarredAt}, nil
}

func summarizeWatch(body []byte) (Summary, error) {
	var event struct {
		Action string `json:"action"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse watch event: %w", err)
	}

	return WatchSummary{Action: event.Action}, nil
}

func summarizeFork(body []byte) (Summary, error) {
	var event struct {
		Forkee struct {
			FullName string `json:"full_name"`
		} `json:"forkee"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse fork event: %w", err)
	}

	return ForkSummary{Forkee: event.Forkee.FullName}, nil
}

func summarizeRelease(body []byte) (Summary, error) {
	var event struct {
		Action  string `json:"action"`
		Release struct {
			Name       string `json:"name"`
			TagName    string `json:"tag_name"`
			Prerelease bool   `json:"prerelease"`
		} `json:"release"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse release event: %w", err)
	}

	return ReleaseSummary{
		Action:     event.Action,
		Name:       event.Release.Name,
		Tag:        event.Release.TagName,
		Prerelease: event.Release.Prerelease,
	}, nil
}

func summarizeSecurityAdvisory(body []byte) (Summary, error) {
	var event struct {
		Action           string `json:"action"`
		SecurityAdvisory struct {
			GHSAID   string `json:"ghsa_id"`
			Severity string `json:"severity"`
		} `json:"security_advisory"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse security advisory event: %w", err)
	}

	return SecurityAdvisorySummary{
		Action:     event.Action,
		AdvisoryID: event.SecurityAdvisory.GHSAID,
		Severity:   event.SecurityAdvisory.Severity,
	}, nil
}

func summarizeVulnerabilityAlert(body []byte) (Summary, error) {
	var event struct {
		Action string `json:"action"`
		Alert  struct {
			Number int    `json:"number"`
			State  string `json:"state"`
		} `json:"alert"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse vulnerability alert event: %w", err)
	}

	return VulnerabilityAlertSummary{
		Action:      event.Action,
		AlertNumber: event.Alert.Number,
		AlertState:  event.Alert.State,
	}, nil
}

func summarizePing(body []byte) (Summary, error) {
	var event struct {
		Zen    string `json:"zen"`
		HookID int64  `json:"hook_id"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse ping event: %w", err)
	}

	return PingSummary{Zen: event.Zen, HookID: event.HookID}, nil
}
