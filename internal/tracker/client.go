package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sprint-reporter-bot/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const component = "JiraClient"

// Doer выполняет один HTTP-запрос. *http.Client удовлетворяет интерфейсу;
// в тестах подставляется двойник без рефлексии.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client ходит в Jira REST API: доска спринта и dev-status по задачам.
// Все запросы идут через один Doer с одной basic-auth парой.
type Client struct {
	doer    Doer
	baseURL string
	email   string
	token   string
	logger  *logrus.Logger
}

func NewClient(doer Doer, baseURL, email, token string, logger *logrus.Logger) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		logger:  logger,
	}
}

// FetchSprintIssues возвращает задачи доски спринта в статусе "In Review".
// Фильтр задаётся в jql на стороне сервера и перепроверяется клиентом.
func (c *Client) FetchSprintIssues(ctx context.Context, sprint int) ([]domain.SprintIssue, error) {
	query := url.Values{
		"jql":    {`status="In Review"`},
		"fields": {"assignee,status,summary"},
	}

	var resp SprintResponse
	if err := c.get(ctx, fmt.Sprintf("agile/1.0/sprint/%d/issue", sprint), query, &resp); err != nil {
		return nil, err
	}
	return FilterIssues(resp), nil
}

// FetchReviewRequests запрашивает dev-status по каждой задаче параллельно.
// Ответ каждой задачи сшивается с её идентичностью. Партия считается
// неуспешной целиком, если упал хотя бы один запрос: частичных результатов нет.
func (c *Client) FetchReviewRequests(ctx context.Context, issues []domain.SprintIssue) ([]domain.ReviewBundle, error) {
	bundles := make([]domain.ReviewBundle, len(issues))

	g, gctx := errgroup.WithContext(ctx)
	for i, issue := range issues {
		i, issue := i, issue
		g.Go(func() error {
			query := url.Values{
				"issueId":         {issue.ID},
				"applicationType": {"bitbucket"},
				"dataType":        {"pullrequest"},
			}
			var resp DetailResponse
			if err := c.get(gctx, "dev-status/1.0/issue/detail", query, &resp); err != nil {
				return err
			}
			bundles[i] = domain.ReviewBundle{
				Issue:        issue,
				PullRequests: flattenDetail(resp),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundles, nil
}

// get выполняет GET с basic-auth и раскладывает JSON-ответ в dest.
// Каждый сбой логируется с именем компонента, URL и классом сбоя
// до проброса наверх.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	target := c.baseURL + "/rest/" + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.email, c.token)

	resp, err := c.doer.Do(req)
	if err != nil {
		return c.fail(&domain.APIError{Kind: domain.ErrTransport, Component: component, URL: target, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(&domain.APIError{Kind: domain.ErrProtocol, Component: component, URL: target, Status: resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return c.fail(&domain.APIError{Kind: domain.ErrDecode, Component: component, URL: target, Err: err})
	}
	return nil
}

func (c *Client) fail(apiErr *domain.APIError) error {
	entry := c.logger.WithFields(logrus.Fields{
		"component": apiErr.Component,
		"url":       apiErr.URL,
		"kind":      apiErr.Kind.Error(),
	})
	if apiErr.Status != 0 {
		entry = entry.WithField("status_code", apiErr.Status)
	}
	if apiErr.Err != nil {
		entry = entry.WithError(apiErr.Err)
	}
	entry.Error("Jira request failed")
	return apiErr
}
