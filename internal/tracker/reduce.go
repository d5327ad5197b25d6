package tracker

import (
	"encoding/json"

	"sprint-reporter-bot/internal/domain"
)

// Статусы, с которыми работает конвейер.
const (
	issueStatusInReview = "In Review"
	reviewStatusOpen    = "OPEN"
)

// SprintResponse — ответ Jira agile API на запрос задач спринта.
type SprintResponse struct {
	Issues []IssuePayload `json:"issues"`
}

type IssuePayload struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Self   string `json:"self"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

// DetailResponse — ответ dev-status API по одной задаче.
type DetailResponse struct {
	Detail []DetailPayload   `json:"detail"`
	Errors []json.RawMessage `json:"errors"`
}

type DetailPayload struct {
	PullRequests []PullRequestPayload `json:"pullRequests"`
}

type PullRequestPayload struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	URL    string `json:"url"`
	Author struct {
		Name string `json:"name"`
	} `json:"author"`
	Reviewers []struct {
		Name     string `json:"name"`
		Approved bool   `json:"approved"`
	} `json:"reviewers"`
}

// FilterIssues оставляет только задачи в статусе "In Review" и проецирует их
// в доменный вид. Серверный jql-фильтр перепроверяется, чтобы пережить
// рассинхрон с трекером. Порядок задач сохраняется.
func FilterIssues(resp SprintResponse) []domain.SprintIssue {
	issues := make([]domain.SprintIssue, 0, len(resp.Issues))
	for _, issue := range resp.Issues {
		if issue.Fields.Status.Name != issueStatusInReview {
			continue
		}
		issues = append(issues, domain.SprintIssue{
			ID:     issue.ID,
			Key:    issue.Key,
			Title:  issue.Fields.Summary,
			Status: issue.Fields.Status.Name,
			Self:   issue.Self,
		})
	}
	return issues
}

// flattenDetail собирает пул-реквесты всех detail-записей ответа в один список.
func flattenDetail(resp DetailResponse) []domain.ReviewRequest {
	var requests []domain.ReviewRequest
	for _, detail := range resp.Detail {
		for _, pr := range detail.PullRequests {
			reviewers := make([]domain.Reviewer, len(pr.Reviewers))
			for i, r := range pr.Reviewers {
				reviewers[i] = domain.Reviewer{Name: r.Name, Approved: r.Approved}
			}
			requests = append(requests, domain.ReviewRequest{
				ID:        pr.ID,
				Name:      pr.Name,
				Status:    pr.Status,
				URL:       pr.URL,
				Author:    pr.Author.Name,
				Reviewers: reviewers,
			})
		}
	}
	return requests
}

// Reduce сводит сырые пакеты к записям отчёта. Чистая функция: задача попадает
// в результат, только если у неё есть открытый пул-реквест с хотя бы одним
// ревьювером без аппрува. Порядок задач и пул-реквестов сохраняется.
func Reduce(bundles []domain.ReviewBundle) []domain.ActionableRecord {
	records := make([]domain.ActionableRecord, 0, len(bundles))
	for _, bundle := range bundles {
		pullRequests := openUnapproved(bundle.PullRequests)
		if len(pullRequests) == 0 {
			continue
		}
		records = append(records, domain.ActionableRecord{
			Key:          bundle.Issue.Key,
			Title:        bundle.Issue.Title,
			PullRequests: pullRequests,
		})
	}
	return records
}

// openUnapproved отбирает открытые пул-реквесты, у которых остались ревьюверы
// без аппрува, и проецирует их в записи отчёта.
func openUnapproved(requests []domain.ReviewRequest) []domain.PullRequestInfo {
	var result []domain.PullRequestInfo
	for _, request := range requests {
		if request.Status != reviewStatusOpen {
			continue
		}
		var waiting []string
		for _, reviewer := range request.Reviewers {
			if !reviewer.Approved {
				waiting = append(waiting, reviewer.Name)
			}
		}
		if len(waiting) == 0 {
			continue
		}
		result = append(result, domain.PullRequestInfo{
			Author:    request.Author,
			URL:       request.URL,
			Reviewers: waiting,
		})
	}
	return result
}
