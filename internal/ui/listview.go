package ui

import (
	"sort"
	"strings"
)

// FieldFunc возвращает строковое значение поля строки по ключу фильтра
type FieldFunc[T any] func(row T, key string) string

// List - состояние списка с фильтрацией и постраничным выводом.
// Фильтры объединяются по И, сравнение - подстрока без учёта регистра.
type List[T any] struct {
	rows    []T
	fieldFn FieldFunc[T]
	filters map[string]string
	page    int
	perPage int

	sortKey  string
	sortDesc bool

	// Токен загрузки: ответы устаревших запросов игнорируются
	fetchSeq int
}

// NewList создаёт пустой список
func NewList[T any](fieldFn FieldFunc[T], perPage int) *List[T] {
	if perPage <= 0 {
		perPage = 10
	}
	return &List[T]{
		fieldFn: fieldFn,
		filters: make(map[string]string),
		page:    1,
		perPage: perPage,
	}
}

// BeginFetch выдаёт новый токен загрузки, отменяя устаревшие
func (l *List[T]) BeginFetch() int {
	l.fetchSeq++
	return l.fetchSeq
}

// AcceptFetch сообщает, актуален ли ещё токен загрузки
func (l *List[T]) AcceptFetch(seq int) bool {
	return seq == l.fetchSeq
}

// SetRows заменяет данные списка и возвращает на первую страницу
func (l *List[T]) SetRows(rows []T) {
	l.rows = rows
	l.page = 1
}

// Rows возвращает все загруженные строки без фильтрации
func (l *List[T]) Rows() []T {
	return l.rows
}

// SetFilter устанавливает значение фильтра, пустое значение снимает фильтр.
// Смена фильтра возвращает на первую страницу.
func (l *List[T]) SetFilter(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(l.filters, key)
	} else {
		l.filters[key] = value
	}
	l.page = 1
}

// Filter возвращает текущее значение фильтра
func (l *List[T]) Filter(key string) string {
	return l.filters[key]
}

// HasFilters сообщает, установлен ли хотя бы один фильтр
func (l *List[T]) HasFilters() bool {
	return len(l.filters) > 0
}

// ClearFilters снимает все фильтры. Повторный вызов ничего не меняет.
func (l *List[T]) ClearFilters() {
	if len(l.filters) == 0 {
		return
	}
	l.filters = make(map[string]string)
	l.page = 1
}

// SetSort задаёт столбец и направление сортировки
func (l *List[T]) SetSort(key string, desc bool) {
	l.sortKey = key
	l.sortDesc = desc
}

// SortKey возвращает текущий столбец сортировки
func (l *List[T]) SortKey() string {
	return l.sortKey
}

// SortDesc сообщает направление сортировки
func (l *List[T]) SortDesc() bool {
	return l.sortDesc
}

// Filtered возвращает строки, проходящие все установленные фильтры,
// в порядке текущей сортировки. Даты YYYY-MM-DD сортируются строково.
func (l *List[T]) Filtered() []T {
	out := make([]T, 0, len(l.rows))
	for _, row := range l.rows {
		if l.matches(row) {
			out = append(out, row)
		}
	}

	if l.sortKey != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a := l.fieldFn(out[i], l.sortKey)
			b := l.fieldFn(out[j], l.sortKey)
			if l.sortDesc {
				return a > b
			}
			return a < b
		})
	}
	return out
}

func (l *List[T]) matches(row T) bool {
	for key, want := range l.filters {
		value := l.fieldFn(row, key)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// PerPage возвращает текущий размер страницы
func (l *List[T]) PerPage() int {
	return l.perPage
}

// SetPerPage меняет размер страницы и возвращает на первую
func (l *List[T]) SetPerPage(n int) {
	if n <= 0 {
		return
	}
	l.perPage = n
	l.page = 1
}

// Page возвращает номер текущей страницы (с единицы)
func (l *List[T]) Page() int {
	return l.page
}

// TotalPages возвращает число страниц по отфильтрованным данным, минимум 1
func (l *List[T]) TotalPages() int {
	n := len(l.Filtered())
	if n == 0 {
		return 1
	}
	pages := n / l.perPage
	if n%l.perPage != 0 {
		pages++
	}
	return pages
}

// SetPage переходит на страницу, ограничивая номер допустимым диапазоном
func (l *List[T]) SetPage(page int) {
	total := l.TotalPages()
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	l.page = page
}

// NextPage переходит на следующую страницу
func (l *List[T]) NextPage() {
	l.SetPage(l.page + 1)
}

// PrevPage переходит на предыдущую страницу
func (l *List[T]) PrevPage() {
	l.SetPage(l.page - 1)
}

// Visible возвращает строки текущей страницы
func (l *List[T]) Visible() []T {
	filtered := l.Filtered()

	// Текущая страница могла опустеть после смены фильтров
	if l.page > l.TotalPages() {
		l.page = l.TotalPages()
	}

	start := (l.page - 1) * l.perPage
	if start >= len(filtered) {
		return nil
	}
	end := start + l.perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Ordinal возвращает сквозной номер строки: позиция в отфильтрованном
// списке, а не на странице. Для k-й строки страницы p это (p-1)*perPage+k.
func (l *List[T]) Ordinal(indexOnPage int) int {
	return (l.page-1)*l.perPage + indexOnPage + 1
}

// Prepend добавляет созданную на сервере запись в начало списка
func (l *List[T]) Prepend(row T) {
	l.rows = append([]T{row}, l.rows...)
}

// PatchRows применяет правку ко всем строкам, прошедшим проверку match.
// Используется для обновления денормализованных названий после
// переименования записи справочника без перезагрузки списка.
func (l *List[T]) PatchRows(match func(T) bool, apply func(*T)) int {
	patched := 0
	for i := range l.rows {
		if match(l.rows[i]) {
			apply(&l.rows[i])
			patched++
		}
	}
	return patched
}
