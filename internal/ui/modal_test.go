package ui

import (
	"testing"

	"github.com/user/silant-service-api/internal/client"
)

func TestModalLifecycle(t *testing.T) {
	var m Modal
	if m.State != ModalClosed {
		t.Fatal("новое окно должно быть закрыто")
	}

	seq := m.Open("vehicle", 1)
	if m.State != ModalLoading {
		t.Fatal("после открытия окно должно грузиться")
	}

	m.Loaded(seq, client.RefModel{ID: 1, Name: "ПД1,5", Description: "Погрузчик"})
	if m.State != ModalViewing {
		t.Fatal("после загрузки окно должно показывать карточку")
	}
	if m.Item.Name != "ПД1,5" {
		t.Errorf("карточка не заполнена: %+v", m.Item)
	}

	m.StartEdit()
	if m.State != ModalEditing {
		t.Fatal("после StartEdit окно должно быть в правке")
	}
	if m.DraftName != "ПД1,5" || m.DraftDescription != "Погрузчик" {
		t.Errorf("черновик не заполнен из карточки: %q / %q", m.DraftName, m.DraftDescription)
	}

	// Отмена правки не трогает карточку
	m.DraftName = "Изменено"
	m.CancelEdit()
	if m.State != ModalViewing {
		t.Fatal("после отмены окно должно вернуться в просмотр")
	}
	if m.Item.Name != "ПД1,5" {
		t.Errorf("отмена правки изменила карточку: %q", m.Item.Name)
	}

	m.StartEdit()
	m.Saved(client.RefModel{ID: 1, Name: "ПД1,5М", Description: "Погрузчик"})
	if m.State != ModalViewing {
		t.Fatal("после сохранения окно должно вернуться в просмотр")
	}
	if m.Item.Name != "ПД1,5М" {
		t.Errorf("сохранённая карточка не применена: %q", m.Item.Name)
	}

	m.Close()
	if m.State != ModalClosed {
		t.Fatal("окно должно закрыться")
	}
}

func TestModalStaleLoad(t *testing.T) {
	var m Modal

	old := m.Open("vehicle", 1)
	m.Close()

	// Ответ загрузки, пришедший после закрытия, игнорируется
	m.Loaded(old, client.RefModel{ID: 1, Name: "Поздний ответ"})
	if m.State != ModalClosed {
		t.Fatal("устаревший ответ не должен открывать окно")
	}

	// Повторное открытие: ответ старого запроса не перекрывает новый
	first := m.Open("vehicle", 1)
	second := m.Open("engine", 2)
	m.Loaded(first, client.RefModel{ID: 1, Name: "Старый"})
	if m.State != ModalLoading {
		t.Fatal("ответ устаревшего запроса не должен приниматься")
	}
	m.Loaded(second, client.RefModel{ID: 2, Name: "Новый"})
	if m.State != ModalViewing || m.Item.Name != "Новый" {
		t.Errorf("актуальный ответ должен применяться: %+v", m.Item)
	}
}

func TestModalEditOnlyFromViewing(t *testing.T) {
	var m Modal
	m.Open("vehicle", 1)

	// В загрузке правка недоступна
	m.StartEdit()
	if m.State != ModalLoading {
		t.Error("правка из состояния загрузки должна игнорироваться")
	}
}

func TestModalFail(t *testing.T) {
	var m Modal
	seq := m.Open("vehicle", 1)
	m.Fail(seq, "превышено время ожидания ответа от сервера")
	if m.Err == "" {
		t.Error("ошибка должна быть показана")
	}
	if m.State != ModalViewing {
		t.Error("после ошибки загрузки окно остаётся открытым")
	}
}
