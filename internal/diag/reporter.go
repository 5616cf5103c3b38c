package diag

// Reporter — минимальный контракт получения диагностик от фаз декодирования.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтрует дубли).
type Reporter interface {
	Report(code Code, sev Severity, primary Loc, msg string, notes []Note)
}

// BagReporter — адаптер, который пишет в *Bag. Nil Bag глотает всё.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary Loc, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}
