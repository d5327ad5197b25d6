package messenger

import (
	"fmt"
	"strings"

	"sprint-reporter-bot/internal/domain"

	"github.com/slack-go/slack"
)

// Version отображается в контекстном блоке каждого отчёта.
const Version = "0.0.4"

const (
	// Страница запечатывается, как только блоков становится больше порога.
	maxBlocksPerPage = 45

	headerText         = ":bell:  *Pull requests report*  :bell:"
	reportAuthor       = "*Author:* dave"
	reviewButtonText   = "Review Now"
	noPullRequestsText = "No pull requests. Good Job everyone! :v:"
)

// Page — одно исходящее сообщение: упорядоченный набор Block Kit блоков.
type Page []slack.Block

// leadingBlocks — фиксированная шапка каждой страницы отчёта.
func leadingBlocks() []slack.Block {
	header := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, headerText, false, false), nil, nil)
	author := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, reportAuthor, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*version:* "+Version, false, false))
	return []slack.Block{header, author, slack.NewDividerBlock()}
}

// NoPullRequestsPage — отдельный шаблон на случай пустого отчёта.
func NoPullRequestsPage() Page {
	blocks := leadingBlocks()
	return append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, noPullRequestsText, false, false), nil, nil))
}

// Compose раскладывает записи отчёта по страницам. На каждую задачу — блок
// заголовка, по блоку на пул-реквест (упоминания ревьюверов через пробел и
// кнопка на сам пул-реквест) и разделитель. Страница, перевалившая порог
// блоков, запечатывается, и следующая начинается с той же шапки. Если ни
// одного содержательного блока не вышло, возвращается страница-заглушка.
func Compose(records []domain.ActionableRecord, resolver *Resolver) []Page {
	var pages []Page
	page := Page(leadingBlocks())
	wroteAny := false

	for _, record := range records {
		descriptions := make([]slack.Block, 0, len(record.PullRequests))
		for _, pr := range record.PullRequests {
			mentions := make([]string, len(pr.Reviewers))
			for i, name := range pr.Reviewers {
				mentions[i] = resolver.Resolve(name)
			}
			descriptions = append(descriptions, descriptionBlock(strings.Join(mentions, " "), pr.URL))
		}
		if len(descriptions) == 0 {
			continue
		}
		wroteAny = true

		page = append(page, titleBlock(record.Key, record.Title))
		page = append(page, descriptions...)
		page = append(page, slack.NewDividerBlock())

		if len(page) > maxBlocksPerPage {
			pages = append(pages, page)
			page = Page(leadingBlocks())
		}
	}

	if !wroteAny {
		return []Page{NoPullRequestsPage()}
	}
	if len(page) > len(leadingBlocks()) {
		pages = append(pages, page)
	}
	return pages
}

func titleBlock(key, title string) slack.Block {
	text := fmt.Sprintf(":bender: *[%s] %s*", key, title)
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func descriptionBlock(mentions, url string) slack.Block {
	button := slack.NewButtonBlockElement("", "",
		slack.NewTextBlockObject(slack.PlainTextType, reviewButtonText, true, false))
	button.URL = url
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, mentions, false, false),
		nil, slack.NewAccessory(button))
}
