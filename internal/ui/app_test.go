package ui

import (
	"path/filepath"
	"testing"

	"github.com/user/silant-service-api/internal/client"
	"github.com/user/silant-service-api/internal/clientcfg"
	"github.com/user/silant-service-api/internal/session"
)

func newTestApp(t *testing.T, role string) *App {
	t.Helper()
	api, err := client.NewClient("http://127.0.0.1:8080")
	if err != nil {
		t.Fatalf("создание клиента: %v", err)
	}
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	app := NewApp(api, store, clientcfg.Config{PerPage: 10})
	app.sess = &session.Session{UserID: 1, Username: "user", Role: role, Token: "jwt"}
	app.focus = focusList
	return app
}

func TestCanCreateByRole(t *testing.T) {
	cases := []struct {
		role string
		tab  Tab
		want bool
	}{
		{"manager", TabCars, true},
		{"manager", TabMaintenance, true},
		{"manager", TabComplaints, true},
		{"service", TabCars, false},
		{"service", TabMaintenance, true},
		{"service", TabComplaints, true},
		{"client", TabCars, false},
		{"client", TabMaintenance, false},
		{"client", TabComplaints, false},
	}
	for _, tc := range cases {
		app := newTestApp(t, tc.role)
		if got := app.canCreate(tc.tab); got != tc.want {
			t.Errorf("canCreate(%s, вкладка %d) = %v, ожидалось %v",
				tc.role, tc.tab, got, tc.want)
		}
	}
}

func TestLateTabResponseKeepsLoading(t *testing.T) {
	app := newTestApp(t, "manager")
	app.tab = TabCars
	seq := app.cars.BeginFetch()

	// Пользователь переключился на ТО, её запрос ещё в пути
	app.tab = TabMaintenance
	app.loading = true

	app.Update(carsMsg{seq: seq, rows: []client.CarRow{{VIN: "TESTVIN0000000001"}}})

	if !app.loading {
		t.Error("ответ чужой вкладки не должен гасить индикатор загрузки")
	}
	if len(app.cars.Rows()) != 1 {
		t.Error("ответ должен пополнить список своей вкладки")
	}
}

func TestLateSaveStillPatchesRows(t *testing.T) {
	app := newTestApp(t, "manager")
	app.complaints.SetRows([]client.ComplaintRow{
		{ID: 1, NodeFailureID: 3, NodeFailure: "Старое название"},
		{ID: 2, NodeFailureID: 4, NodeFailure: "Гидросистема"},
	})

	seq := app.modal.Open("failure-node", 3)
	// Окно закрыто до прихода подтверждения сохранения
	app.modal.Close()

	app.Update(refSavedMsg{
		seq:       seq,
		modelType: "failure-node",
		item:      &client.RefModel{ID: 3, Name: "Двигатель", Description: ""},
	})

	rows := app.complaints.Rows()
	if rows[0].NodeFailure != "Двигатель" {
		t.Errorf("переименование применено сервером и должно попасть в список: %q", rows[0].NodeFailure)
	}
	if rows[1].NodeFailure != "Гидросистема" {
		t.Errorf("чужая строка исправлена: %q", rows[1].NodeFailure)
	}
	if app.focus == focusModal {
		t.Error("запоздалое подтверждение не должно заново открывать окно")
	}
	if app.modal.State != ModalClosed {
		t.Errorf("окно должно оставаться закрытым, состояние %v", app.modal.State)
	}
}
