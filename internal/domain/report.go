package domain

// SprintIssue представляет задачу спринта, спроецированную из ответа трекера.
// Идентичность задачи определяется полями ID/Key.
type SprintIssue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Self   string `json:"self"`
}

// Reviewer — ревьювер пул-реквеста с признаком аппрува.
type Reviewer struct {
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
}

// ReviewRequest — пул-реквест, привязанный к задаче спринта.
type ReviewRequest struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	URL       string     `json:"url"`
	Author    string     `json:"author"`
	Reviewers []Reviewer `json:"reviewers"`
}

// ReviewBundle — сырой ответ dev-status API по одной задаче с вшитой
// идентичностью самой задачи, чтобы ниже по конвейеру не переассоциировать
// пул-реквесты с задачами заново.
type ReviewBundle struct {
	Issue        SprintIssue
	PullRequests []ReviewRequest
}

// PullRequestInfo — пул-реквест, ждущий ревью, в составе записи отчёта.
type PullRequestInfo struct {
	Author    string   `json:"author"`
	URL       string   `json:"url"`
	Reviewers []string `json:"reviewers"`
}

// ActionableRecord — задача с непустым списком пул-реквестов, по которым есть
// хотя бы один ревьювер без аппрува. Живёт только в рамках одного прогона.
type ActionableRecord struct {
	Key          string            `json:"key"`
	Title        string            `json:"title"`
	PullRequests []PullRequestInfo `json:"pull_requests"`
}

// Member — участник воркспейса из снапшота ростера.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Ключи внешнего хранилища.
const (
	KeyKnownUserIDs = "slack-known-user-ids"
	KeySlackMembers = "slack-members"
	KeySprintNumber = "sprint-number"
)
