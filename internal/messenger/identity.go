package messenger

import "sprint-reporter-bot/internal/domain"

// Resolver превращает имя ревьювера в токен упоминания Slack.
// Кэш сквозного чтения: промах ищется в ростере (точно, потом один раз по
// слагу), результат — найденный или исходное имя как есть — запоминается под
// исходным именем навсегда в пределах жизни кэша. Повторный Resolve того же
// имени в ростер не ходит. Снапшот ростера может быть сколь угодно старым:
// его свежесть здесь не проверяется.
type Resolver struct {
	known  map[string]string
	roster []domain.Member
}

// NewResolver строит резолвер из снапшота кэша упоминаний и ростера.
func NewResolver(known map[string]string, roster []domain.Member) *Resolver {
	if known == nil {
		known = make(map[string]string)
	}
	return &Resolver{known: known, roster: roster}
}

// Resolve возвращает '<@ID>' для найденного участника либо исходное имя.
func (r *Resolver) Resolve(name string) string {
	if mention, ok := r.known[name]; ok {
		return mention
	}

	mention := name
	member, ok := r.lookup(name)
	if !ok {
		// Ровно одна повторная попытка по слагу, без рекурсии.
		member, ok = r.lookup(Slugify(name))
	}
	if ok {
		mention = "<@" + member.ID + ">"
	}

	r.known[name] = mention
	return mention
}

func (r *Resolver) lookup(name string) (domain.Member, bool) {
	for _, member := range r.roster {
		if member.DisplayName == name {
			return member, true
		}
	}
	return domain.Member{}, false
}

// Known отдаёт накопленные соответствия для записи обратно в хранилище.
func (r *Resolver) Known() map[string]string {
	return r.known
}
