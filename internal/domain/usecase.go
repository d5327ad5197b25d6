package domain

import "context"

// TrackerClient получает задачи спринта и связанные с ними пул-реквесты.
type TrackerClient interface {
	FetchSprintIssues(ctx context.Context, sprint int) ([]SprintIssue, error)
	FetchReviewRequests(ctx context.Context, issues []SprintIssue) ([]ReviewBundle, error)
}

// KeyValueStore — внешнее хранилище JSON-значений по строковым ключам.
// Отсутствие ключа — обычная ветка (ok=false), а не ошибка.
type KeyValueStore interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}
