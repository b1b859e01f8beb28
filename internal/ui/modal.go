package ui

import "github.com/user/silant-service-api/internal/client"

// ModalState - состояние модального окна карточки справочника
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalViewing
	ModalEditing
)

// Modal - модальное окно поверх списка: закрыто → загрузка → просмотр → правка.
// Список под окном не трогается, пока окно открыто.
type Modal struct {
	State ModalState
	Type  string // слаг справочника
	ID    uint
	Item  client.RefModel

	DraftName        string
	DraftDescription string

	Err string

	// Токен открытия: ответ устаревшей загрузки игнорируется
	seq int
}

// Open переводит окно в загрузку карточки и возвращает токен загрузки
func (m *Modal) Open(modelType string, id uint) int {
	m.seq++
	m.State = ModalLoading
	m.Type = modelType
	m.ID = id
	m.Item = client.RefModel{}
	m.Err = ""
	return m.seq
}

// Loaded принимает загруженную карточку, если токен ещё актуален
func (m *Modal) Loaded(seq int, item client.RefModel) {
	if seq != m.seq || m.State != ModalLoading {
		return
	}
	m.Item = item
	m.State = ModalViewing
}

// Fail показывает ошибку загрузки или сохранения
func (m *Modal) Fail(seq int, msg string) {
	if seq != m.seq {
		return
	}
	if m.State == ModalLoading {
		m.State = ModalViewing
	}
	m.Err = msg
}

// StartEdit переходит в правку, черновик заполняется текущими значениями
func (m *Modal) StartEdit() {
	if m.State != ModalViewing {
		return
	}
	m.DraftName = m.Item.Name
	m.DraftDescription = m.Item.Description
	m.Err = ""
	m.State = ModalEditing
}

// CancelEdit отменяет правку, черновик отбрасывается
func (m *Modal) CancelEdit() {
	if m.State != ModalEditing {
		return
	}
	m.State = ModalViewing
	m.Err = ""
}

// Saved принимает сохранённую карточку и возвращает окно в просмотр
func (m *Modal) Saved(item client.RefModel) {
	m.Item = item
	m.State = ModalViewing
	m.Err = ""
}

// Close закрывает окно; устаревшие ответы после закрытия игнорируются
func (m *Modal) Close() {
	m.seq++
	m.State = ModalClosed
	m.Type = ""
	m.ID = 0
	m.Item = client.RefModel{}
	m.Err = ""
}

// Seq возвращает текущий токен окна
func (m *Modal) Seq() int {
	return m.seq
}
