package messenger_test

import (
	"fmt"
	"testing"

	"sprint-reporter-bot/internal/domain"
	"sprint-reporter-bot/internal/messenger"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(key string, pullRequests ...domain.PullRequestInfo) domain.ActionableRecord {
	return domain.ActionableRecord{
		Key:          key,
		Title:        "Title " + key,
		PullRequests: pullRequests,
	}
}

func pullRequest(url string, reviewers ...string) domain.PullRequestInfo {
	return domain.PullRequestInfo{Author: "Alice", URL: url, Reviewers: reviewers}
}

func sectionText(t *testing.T, block slack.Block) string {
	t.Helper()
	section, ok := block.(*slack.SectionBlock)
	require.True(t, ok, "expected section block, got %T", block)
	return section.Text.Text
}

func TestCompose_SingleIssueSinglePullRequest(t *testing.T) {
	resolver := messenger.NewResolver(nil, nil)
	records := []domain.ActionableRecord{
		record("EX-1", pullRequest("https://bitbucket.org/pr/1", "Bob", "Charlie", "Dave")),
	}

	pages := messenger.Compose(records, resolver)

	require.Len(t, pages, 1)
	blocks := pages[0]
	// Шапка (3 блока) + заголовок + описание + разделитель.
	require.Len(t, blocks, 6)

	assert.Equal(t, ":bender: *[EX-1] Title EX-1*", sectionText(t, blocks[3]))
	assert.Equal(t, "Bob Charlie Dave", sectionText(t, blocks[4]))

	description, ok := blocks[4].(*slack.SectionBlock)
	require.True(t, ok)
	require.NotNil(t, description.Accessory)
	require.NotNil(t, description.Accessory.ButtonElement)
	assert.Equal(t, "https://bitbucket.org/pr/1", description.Accessory.ButtonElement.URL)

	_, isDivider := blocks[5].(*slack.DividerBlock)
	assert.True(t, isDivider)
}

func TestCompose_ResolvesMentionsThroughRoster(t *testing.T) {
	roster := []domain.Member{
		{ID: "U1", DisplayName: "Bob Smith"},
		{ID: "U2", DisplayName: "Charlie Brown"},
	}
	resolver := messenger.NewResolver(nil, roster)
	records := []domain.ActionableRecord{
		record("EX-1", pullRequest("https://bitbucket.org/pr/1", "Bob Smith", "Charlie Brown", "Ghost")),
	}

	pages := messenger.Compose(records, resolver)

	require.Len(t, pages, 1)
	assert.Equal(t, "<@U1> <@U2> Ghost", sectionText(t, pages[0][4]))
}

func TestCompose_TwoIssuesTwoPullRequestsEach(t *testing.T) {
	resolver := messenger.NewResolver(nil, nil)
	records := []domain.ActionableRecord{
		record("EX-1",
			pullRequest("https://bitbucket.org/pr/1", "Bob"),
			pullRequest("https://bitbucket.org/pr/2", "Charlie")),
		record("EX-2",
			pullRequest("https://bitbucket.org/pr/3", "Dave"),
			pullRequest("https://bitbucket.org/pr/4", "Eve")),
	}

	pages := messenger.Compose(records, resolver)

	require.Len(t, pages, 1)
	blocks := pages[0]
	// Шапка + 2 секции по (заголовок + 2 описания + разделитель).
	require.Len(t, blocks, 3+4+4)

	assert.Equal(t, ":bender: *[EX-1] Title EX-1*", sectionText(t, blocks[3]))
	assert.Equal(t, "Bob", sectionText(t, blocks[4]))
	assert.Equal(t, "Charlie", sectionText(t, blocks[5]))
	_, isDivider := blocks[6].(*slack.DividerBlock)
	assert.True(t, isDivider)

	assert.Equal(t, ":bender: *[EX-2] Title EX-2*", sectionText(t, blocks[7]))
	_, isDivider = blocks[10].(*slack.DividerBlock)
	assert.True(t, isDivider)
}

func TestCompose_PaginatesPastBlockThreshold(t *testing.T) {
	resolver := messenger.NewResolver(nil, nil)

	// Каждая запись добавляет 3 блока; после 15-й страница переваливает порог.
	var records []domain.ActionableRecord
	for i := 1; i <= 16; i++ {
		key := fmt.Sprintf("EX-%d", i)
		records = append(records, record(key, pullRequest("https://bitbucket.org/pr/"+key, "Bob")))
	}

	pages := messenger.Compose(records, resolver)

	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 48)
	assert.Len(t, pages[1], 6)

	// Каждая страница начинается с одинаковой шапки.
	for _, page := range pages {
		assert.Equal(t, ":bell:  *Pull requests report*  :bell:", sectionText(t, page[0]))
		_, isContext := page[1].(*slack.ContextBlock)
		assert.True(t, isContext)
		_, isDivider := page[2].(*slack.DividerBlock)
		assert.True(t, isDivider)
	}

	// Конкатенация содержимого страниц воспроизводит исходный порядок записей.
	var titles []string
	for _, page := range pages {
		for _, block := range page[3:] {
			if section, ok := block.(*slack.SectionBlock); ok && section.Accessory == nil {
				titles = append(titles, section.Text.Text)
			}
		}
	}
	require.Len(t, titles, 16)
	for i, title := range titles {
		assert.Equal(t, fmt.Sprintf(":bender: *[EX-%d] Title EX-%d*", i+1, i+1), title)
	}
}

func TestCompose_NoRecordsYieldsFallbackPage(t *testing.T) {
	resolver := messenger.NewResolver(nil, nil)

	pages := messenger.Compose(nil, resolver)

	require.Len(t, pages, 1)
	blocks := pages[0]
	require.Len(t, blocks, 4)
	assert.Equal(t, "No pull requests. Good Job everyone! :v:", sectionText(t, blocks[3]))
}

func TestCompose_RecordsWithoutDescriptionsYieldFallbackPage(t *testing.T) {
	resolver := messenger.NewResolver(nil, nil)
	records := []domain.ActionableRecord{record("EX-1")}

	pages := messenger.Compose(records, resolver)

	require.Len(t, pages, 1)
	require.Len(t, pages[0], 4)
	assert.Equal(t, "No pull requests. Good Job everyone! :v:", sectionText(t, pages[0][3]))
}

func TestNoPullRequestsPage_Template(t *testing.T) {
	page := messenger.NoPullRequestsPage()

	require.Len(t, page, 4)
	assert.Equal(t, ":bell:  *Pull requests report*  :bell:", sectionText(t, page[0]))

	context, ok := page[1].(*slack.ContextBlock)
	require.True(t, ok)
	require.Len(t, context.ContextElements.Elements, 2)

	version, ok := context.ContextElements.Elements[1].(*slack.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "*version:* "+messenger.Version, version.Text)
}
