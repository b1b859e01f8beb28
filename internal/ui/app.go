package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/silant-service-api/internal/client"
	"github.com/user/silant-service-api/internal/clientcfg"
	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/session"
)

// Tab - вкладка клиента
type Tab int

const (
	TabCars Tab = iota
	TabMaintenance
	TabComplaints
)

var tabTitles = []string{"Машины", "ТО", "Рекламации"}

// focus - что сейчас принимает ввод
type focus int

const (
	focusLogin focus = iota
	focusList
	focusFilter
	focusLinks
	focusModal
	focusDraft
)

const (
	requestBudget = 15 * time.Second
	createBudget  = 12 * time.Second
)

// App - модель терминального клиента
type App struct {
	api     *client.Client
	store   *session.Store
	sess    *session.Session
	theme   Theme
	cfg     clientcfg.Config
	width   int
	height  int
	focus   focus
	tab     Tab
	status  string
	loading bool

	cars       *List[client.CarRow]
	maint      *List[client.MaintenanceRow]
	complaints *List[client.ComplaintRow]
	cursor     int

	// Панель фильтров
	filterIdx   int
	filterInput textinput.Model

	// Выбор ссылки на справочник в строке
	links   []RefLink
	linkIdx int

	// Модальное окно карточки справочника
	modal      Modal
	modalField int // 0 - название, 1 - описание
	nameInput  textinput.Model
	descInput  textinput.Model

	// Черновики новых записей, по одному на вкладку. Черновик переживает
	// ошибку отправки и закрытие формы
	drafts     map[Tab]*Draft
	draftInput textinput.Model

	// Экран входа
	loginField int // 0 - логин, 1 - пароль, 2 - поиск по VIN
	userInput  textinput.Model
	passInput  textinput.Model
	vinInput   textinput.Model
	loginErr   string
	vinCard    *client.CarPublic
}

// NewApp создаёт модель клиента
func NewApp(api *client.Client, store *session.Store, cfg clientcfg.Config) *App {
	sess := store.Load()
	if sess.LoggedIn() {
		api.SetToken(sess.Token)
	}

	user := textinput.New()
	user.Placeholder = "логин"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "пароль"
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword

	vin := textinput.New()
	vin.Placeholder = "VIN (17 символов)"
	vin.CharLimit = 17

	filter := textinput.New()
	filter.CharLimit = 64

	name := textinput.New()
	name.CharLimit = 255
	desc := textinput.New()
	desc.CharLimit = 1024

	draftIn := textinput.New()
	draftIn.CharLimit = 255

	app := &App{
		api:         api,
		store:       store,
		sess:        sess,
		theme:       DefaultTheme(),
		cfg:         cfg,
		cars:        NewList(carField, cfg.PerPage),
		maint:       NewList(maintenanceField, cfg.PerPage),
		complaints:  NewList(complaintField, cfg.PerPage),
		userInput:   user,
		passInput:   pass,
		vinInput:    vin,
		filterInput: filter,
		nameInput:   name,
		descInput:   desc,
		drafts:      make(map[Tab]*Draft),
		draftInput:  draftIn,
	}

	// По умолчанию свежие записи сверху
	app.cars.SetSort("shipment_date", true)
	app.maint.SetSort("maintenance_date", true)
	app.complaints.SetSort("date_of_failure", true)

	if sess.LoggedIn() {
		app.focus = focusList
	}
	return app
}

// === Сообщения ===

type loginMsg struct {
	res *client.LoginResult
	err error
}

type carsMsg struct {
	seq  int
	rows []client.CarRow
	err  error
}

type maintMsg struct {
	seq  int
	rows []client.MaintenanceRow
	err  error
}

type complaintsMsg struct {
	seq  int
	rows []client.ComplaintRow
	err  error
}

type refLoadedMsg struct {
	seq  int
	item *client.RefModel
	err  error
}

type refSavedMsg struct {
	seq       int
	modelType string
	item      *client.RefModel
	err       error
}

type vinCardMsg struct {
	card *client.CarPublic
	err  error
}

type createdMsg struct {
	tab       Tab
	car       *client.CarRow
	maint     *client.MaintenanceRow
	complaint *client.ComplaintRow
	err       error
}

// === Команды ===

func (a *App) fetchTab() tea.Cmd {
	switch a.tab {
	case TabCars:
		seq := a.cars.BeginFetch()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
			defer cancel()
			rows, err := a.api.Cars(ctx)
			return carsMsg{seq: seq, rows: rows, err: err}
		}
	case TabMaintenance:
		seq := a.maint.BeginFetch()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
			defer cancel()
			rows, err := a.api.Maintenance(ctx)
			return maintMsg{seq: seq, rows: rows, err: err}
		}
	default:
		seq := a.complaints.BeginFetch()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
			defer cancel()
			rows, err := a.api.Complaints(ctx)
			return complaintsMsg{seq: seq, rows: rows, err: err}
		}
	}
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()
		res, err := a.api.Login(ctx, username, password)
		return loginMsg{res: res, err: err}
	}
}

func (a *App) loadRefCmd(modelType string, id uint, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()
		item, err := a.api.GetRefModel(ctx, modelType, id)
		return refLoadedMsg{seq: seq, item: item, err: err}
	}
}

func (a *App) saveRefCmd(modelType string, id uint, name, description string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()
		item, err := a.api.UpdateRefModel(ctx, modelType, id, &name, &description)
		return refSavedMsg{seq: seq, modelType: modelType, item: item, err: err}
	}
}

func (a *App) submitDraftCmd(d *Draft) tea.Cmd {
	tab := d.tab
	switch tab {
	case TabCars:
		req := d.carCreate()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), createBudget)
			defer cancel()
			row, err := a.api.CreateCar(ctx, req)
			return createdMsg{tab: tab, car: row, err: err}
		}
	case TabMaintenance:
		req := d.maintenanceCreate()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), createBudget)
			defer cancel()
			row, err := a.api.CreateMaintenance(ctx, req)
			return createdMsg{tab: tab, maint: row, err: err}
		}
	default:
		req := d.complaintCreate()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), createBudget)
			defer cancel()
			row, err := a.api.CreateComplaint(ctx, req)
			return createdMsg{tab: tab, complaint: row, err: err}
		}
	}
}

func (a *App) vinCardCmd(vin string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestBudget)
		defer cancel()
		card, err := a.api.CarByVIN(ctx, vin)
		return vinCardMsg{card: card, err: err}
	}
}

// Init запускает загрузку активной вкладки при наличии сессии
func (a *App) Init() tea.Cmd {
	if a.sess.LoggedIn() {
		a.loading = true
		return a.fetchTab()
	}
	return textinput.Blink
}

// === Update ===

// Update обрабатывает события терминала и ответы сервера
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loginMsg:
		a.loading = false
		if msg.err != nil {
			a.loginErr = msg.err.Error()
			return a, nil
		}
		a.sess = &session.Session{
			UserID:   msg.res.ID,
			Username: msg.res.Username,
			Name:     msg.res.Name,
			Role:     models.NormalizeRole(msg.res.Role),
			Token:    msg.res.Token,
		}
		if err := a.store.Save(a.sess); err != nil {
			a.status = "Сессия не сохранена: " + err.Error()
		}
		a.loginErr = ""
		a.passInput.SetValue("")
		a.focus = focusList
		a.loading = true
		return a, a.fetchTab()

	// Ответ чужой вкладки пополняет её список, но не трогает индикатор
	// загрузки и курсор активной

	case carsMsg:
		if !a.cars.AcceptFetch(msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			if a.tab == TabCars {
				a.loading = false
				a.status = msg.err.Error()
			}
			return a, nil
		}
		a.cars.SetRows(msg.rows)
		if a.tab == TabCars {
			a.loading = false
			a.cursor = 0
			a.status = fmt.Sprintf("Загружено машин: %d", len(msg.rows))
		}
		return a, nil

	case maintMsg:
		if !a.maint.AcceptFetch(msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			if a.tab == TabMaintenance {
				a.loading = false
				a.status = msg.err.Error()
			}
			return a, nil
		}
		a.maint.SetRows(msg.rows)
		if a.tab == TabMaintenance {
			a.loading = false
			a.cursor = 0
			a.status = fmt.Sprintf("Загружено записей ТО: %d", len(msg.rows))
		}
		return a, nil

	case complaintsMsg:
		if !a.complaints.AcceptFetch(msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			if a.tab == TabComplaints {
				a.loading = false
				a.status = msg.err.Error()
			}
			return a, nil
		}
		a.complaints.SetRows(msg.rows)
		if a.tab == TabComplaints {
			a.loading = false
			a.cursor = 0
			a.status = fmt.Sprintf("Загружено рекламаций: %d", len(msg.rows))
		}
		return a, nil

	case refLoadedMsg:
		if msg.err != nil {
			a.modal.Fail(msg.seq, msg.err.Error())
			return a, nil
		}
		a.modal.Loaded(msg.seq, *msg.item)
		return a, nil

	case refSavedMsg:
		if msg.err != nil {
			if msg.seq == a.modal.Seq() {
				a.modal.Err = msg.err.Error()
			}
			return a, nil
		}
		// Сервер применил переименование: денормализованные названия в
		// загруженных списках правятся даже если окно уже закрыто
		a.patchAfterRename(msg.modelType, msg.item.ID, msg.item.Name)
		if msg.seq != a.modal.Seq() {
			return a, nil
		}
		a.modal.Saved(*msg.item)
		a.focus = focusModal
		a.status = "Сохранено"
		return a, nil

	case createdMsg:
		d := a.drafts[msg.tab]
		if d != nil {
			d.Sending = false
		}
		if msg.err != nil {
			// Черновик сохраняется для исправления и повторной отправки
			if d != nil {
				d.Err = msg.err.Error()
			} else {
				a.status = msg.err.Error()
			}
			return a, nil
		}
		switch msg.tab {
		case TabCars:
			a.cars.Prepend(*msg.car)
			a.status = "Машина " + msg.car.VIN + " добавлена"
		case TabMaintenance:
			a.maint.Prepend(*msg.maint)
			a.status = "Запись ТО добавлена"
		default:
			a.complaints.Prepend(*msg.complaint)
			a.status = "Рекламация добавлена"
		}
		delete(a.drafts, msg.tab)
		if a.focus == focusDraft && a.tab == msg.tab {
			a.draftInput.Blur()
			a.focus = focusList
			a.cursor = 0
		}
		return a, nil

	case vinCardMsg:
		a.loading = false
		if msg.err != nil {
			a.loginErr = msg.err.Error()
			a.vinCard = nil
			return a, nil
		}
		a.loginErr = ""
		a.vinCard = msg.card
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// patchAfterRename правит названия записей справочника в загруженных
// списках по внешнему ключу, не перезагружая данные с сервера
func (a *App) patchAfterRename(modelType string, id uint, name string) {
	switch modelType {
	case "vehicle":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.VehicleModelID == id },
			func(r *client.CarRow) { r.VehicleModel = name })
	case "engine":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.EngineModelID == id },
			func(r *client.CarRow) { r.EngineModel = name })
	case "transmission":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.TransmissionModelID == id },
			func(r *client.CarRow) { r.TransmissionModel = name })
	case "drive-axle":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.DriveAxleModelID == id },
			func(r *client.CarRow) { r.DriveAxle = name })
	case "steering-axle":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.SteeringAxleModelID == id },
			func(r *client.CarRow) { r.SteeringAxle = name })
	case "maintenance-types":
		a.maint.PatchRows(
			func(r client.MaintenanceRow) bool { return r.MaintenanceTypeID == id },
			func(r *client.MaintenanceRow) { r.MaintenanceType = name })
	case "failure-node":
		a.complaints.PatchRows(
			func(r client.ComplaintRow) bool { return r.NodeFailureID == id },
			func(r *client.ComplaintRow) { r.NodeFailure = name })
	case "recovery-method":
		a.complaints.PatchRows(
			func(r client.ComplaintRow) bool { return r.RecoveryMethodID == id },
			func(r *client.ComplaintRow) { r.RecoveryMethod = name })
	case "service-company":
		a.cars.PatchRows(
			func(r client.CarRow) bool { return r.ServiceCompanyID == id },
			func(r *client.CarRow) { r.ServiceCompany = name })
		a.maint.PatchRows(
			func(r client.MaintenanceRow) bool { return r.ServiceCompanyID == id },
			func(r *client.MaintenanceRow) { r.ServiceCompany = name })
		a.complaints.PatchRows(
			func(r client.ComplaintRow) bool { return r.ServiceCompanyID == id },
			func(r *client.ComplaintRow) { r.ServiceCompany = name })
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.focus {
	case focusLogin:
		return a.handleLoginKey(msg)
	case focusFilter:
		return a.handleFilterKey(msg)
	case focusLinks:
		return a.handleLinksKey(msg)
	case focusModal:
		return a.handleModalKey(msg)
	case focusDraft:
		return a.handleDraftKey(msg)
	default:
		return a.handleListKey(msg)
	}
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		a.loginField = (a.loginField + 1) % 3
		a.syncLoginFocus()
		return a, nil
	case "shift+tab", "up":
		a.loginField = (a.loginField + 2) % 3
		a.syncLoginFocus()
		return a, nil
	case "enter":
		if a.loginField == 2 {
			vin := strings.ToUpper(strings.TrimSpace(a.vinInput.Value()))
			if vin == "" {
				return a, nil
			}
			a.loading = true
			return a, a.vinCardCmd(vin)
		}
		username := strings.TrimSpace(a.userInput.Value())
		password := a.passInput.Value()
		if username == "" || password == "" {
			a.loginErr = "Введите логин и пароль"
			return a, nil
		}
		a.loading = true
		return a, a.loginCmd(username, password)
	case "esc":
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.loginField {
	case 0:
		a.userInput, cmd = a.userInput.Update(msg)
	case 1:
		a.passInput, cmd = a.passInput.Update(msg)
	default:
		a.vinInput, cmd = a.vinInput.Update(msg)
	}
	return a, cmd
}

func (a *App) syncLoginFocus() {
	a.userInput.Blur()
	a.passInput.Blur()
	a.vinInput.Blur()
	switch a.loginField {
	case 0:
		a.userInput.Focus()
	case 1:
		a.passInput.Focus()
	default:
		a.vinInput.Focus()
	}
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1":
		return a.switchTab(TabCars)
	case "2":
		return a.switchTab(TabMaintenance)
	case "3":
		return a.switchTab(TabComplaints)
	case "tab":
		return a.switchTab((a.tab + 1) % 3)
	case "r":
		a.loading = true
		return a, a.fetchTab()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < a.visibleCount()-1 {
			a.cursor++
		}
		return a, nil
	case "left", "h":
		a.activePager().prev()
		a.cursor = 0
		return a, nil
	case "right", "l":
		a.activePager().next()
		a.cursor = 0
		return a, nil
	case "o":
		a.cyclePerPage()
		a.cursor = 0
		return a, nil
	case "s":
		a.cycleSortColumn()
		a.cursor = 0
		return a, nil
	case "S":
		a.toggleSortOrder()
		a.cursor = 0
		return a, nil
	case "a":
		if !a.canCreate(a.tab) {
			a.status = "Недостаточно прав для создания записи"
			return a, nil
		}
		return a.openDraft()
	case "f":
		a.filterIdx = 0
		a.filterInput.SetValue(a.activeFilterValue(0))
		a.filterInput.Focus()
		a.focus = focusFilter
		return a, textinput.Blink
	case "c":
		a.clearActiveFilters()
		a.cursor = 0
		return a, nil
	case "enter":
		links := a.selectedRefLinks()
		if len(links) == 0 {
			return a, nil
		}
		a.links = links
		a.linkIdx = 0
		a.focus = focusLinks
		return a, nil
	case "L":
		// Выход из учётной записи
		a.sess = &session.Session{}
		_ = a.store.Clear()
		a.api.SetToken("")
		a.focus = focusLogin
		a.loginField = 0
		a.syncLoginFocus()
		return a, textinput.Blink
	}
	return a, nil
}

// pager - постраничные операции активной вкладки без знания типа строк
type pager struct {
	prev    func()
	next    func()
	perPage func() int
	setPer  func(int)
}

func (a *App) activePager() pager {
	switch a.tab {
	case TabCars:
		return pager{a.cars.PrevPage, a.cars.NextPage, a.cars.PerPage, a.cars.SetPerPage}
	case TabMaintenance:
		return pager{a.maint.PrevPage, a.maint.NextPage, a.maint.PerPage, a.maint.SetPerPage}
	default:
		return pager{a.complaints.PrevPage, a.complaints.NextPage, a.complaints.PerPage, a.complaints.SetPerPage}
	}
}

func (a *App) cyclePerPage() {
	p := a.activePager()
	current := p.perPage()
	opts := clientcfg.PerPageOptions
	for i, opt := range opts {
		if opt == current {
			p.setPer(opts[(i+1)%len(opts)])
			return
		}
	}
	p.setPer(opts[0])
}

// sorter - операции сортировки активной вкладки без знания типа строк
type sorter struct {
	fields  []FilterField
	key     func() string
	desc    func() bool
	setSort func(string, bool)
}

func (a *App) activeSorter() sorter {
	switch a.tab {
	case TabCars:
		return sorter{carSortFields, a.cars.SortKey, a.cars.SortDesc, a.cars.SetSort}
	case TabMaintenance:
		return sorter{maintenanceSortFields, a.maint.SortKey, a.maint.SortDesc, a.maint.SetSort}
	default:
		return sorter{complaintSortFields, a.complaints.SortKey, a.complaints.SortDesc, a.complaints.SetSort}
	}
}

// cycleSortColumn переключает столбец сортировки по кругу, направление
// сохраняется
func (a *App) cycleSortColumn() {
	s := a.activeSorter()
	current := s.key()
	for i, f := range s.fields {
		if f.Key == current {
			s.setSort(s.fields[(i+1)%len(s.fields)].Key, s.desc())
			return
		}
	}
	s.setSort(s.fields[0].Key, s.desc())
}

func (a *App) toggleSortOrder() {
	s := a.activeSorter()
	s.setSort(s.key(), !s.desc())
}

func (a *App) sortLabel() string {
	s := a.activeSorter()
	current := s.key()
	label := current
	for _, f := range s.fields {
		if f.Key == current {
			label = f.Label
			break
		}
	}
	if s.desc() {
		return label + " ↓"
	}
	return label + " ↑"
}

// canCreate проверяет права роли на создание записи вкладки:
// машины заводит только manager, ТО и рекламации - manager и service
func (a *App) canCreate(tab Tab) bool {
	if a.sess.HasRole(models.RoleManager) {
		return true
	}
	return tab != TabCars && a.sess.HasRole(models.RoleService)
}

func (a *App) openDraft() (tea.Model, tea.Cmd) {
	d := a.drafts[a.tab]
	if d == nil {
		d = newDraft(a.tab)
		a.drafts[a.tab] = d
	}
	a.draftInput.SetValue(d.Value(d.Current().key))
	a.draftInput.Focus()
	a.focus = focusDraft
	return a, textinput.Blink
}

func (a *App) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := a.drafts[a.tab]
	if d == nil {
		a.focus = focusList
		return a, nil
	}
	if d.Sending {
		return a, nil
	}

	switch msg.String() {
	case "esc":
		// Значения остаются в черновике до успешной отправки
		d.Set(d.Current().key, a.draftInput.Value())
		a.draftInput.Blur()
		a.focus = focusList
		return a, nil
	case "tab", "down":
		d.Set(d.Current().key, a.draftInput.Value())
		d.Next()
		a.draftInput.SetValue(d.Value(d.Current().key))
		return a, nil
	case "shift+tab", "up":
		d.Set(d.Current().key, a.draftInput.Value())
		d.Prev()
		a.draftInput.SetValue(d.Value(d.Current().key))
		return a, nil
	case "enter":
		d.Set(d.Current().key, a.draftInput.Value())
		if !d.Last() {
			d.Next()
			a.draftInput.SetValue(d.Value(d.Current().key))
			return a, nil
		}
		if err := d.Validate(); err != "" {
			d.Err = err
			return a, nil
		}
		d.Err = ""
		d.Sending = true
		return a, a.submitDraftCmd(d)
	}

	var cmd tea.Cmd
	a.draftInput, cmd = a.draftInput.Update(msg)
	return a, cmd
}

func (a *App) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	if tab == a.tab {
		return a, nil
	}
	a.tab = tab
	a.cursor = 0
	a.loading = true
	return a, a.fetchTab()
}

func (a *App) visibleCount() int {
	switch a.tab {
	case TabCars:
		return len(a.cars.Visible())
	case TabMaintenance:
		return len(a.maint.Visible())
	default:
		return len(a.complaints.Visible())
	}
}

func (a *App) activeFilterFields() []FilterField {
	switch a.tab {
	case TabCars:
		return carFilterFields
	case TabMaintenance:
		return maintenanceFilterFields
	default:
		return complaintFilterFields
	}
}

func (a *App) activeFilterValue(idx int) string {
	fields := a.activeFilterFields()
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	key := fields[idx].Key
	switch a.tab {
	case TabCars:
		return a.cars.Filter(key)
	case TabMaintenance:
		return a.maint.Filter(key)
	default:
		return a.complaints.Filter(key)
	}
}

func (a *App) setActiveFilter(idx int, value string) {
	fields := a.activeFilterFields()
	if idx < 0 || idx >= len(fields) {
		return
	}
	key := fields[idx].Key
	switch a.tab {
	case TabCars:
		a.cars.SetFilter(key, value)
	case TabMaintenance:
		a.maint.SetFilter(key, value)
	default:
		a.complaints.SetFilter(key, value)
	}
}

func (a *App) clearActiveFilters() {
	switch a.tab {
	case TabCars:
		a.cars.ClearFilters()
	case TabMaintenance:
		a.maint.ClearFilters()
	default:
		a.complaints.ClearFilters()
	}
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.filterInput.Blur()
		a.focus = focusList
		return a, nil
	case "up":
		a.setActiveFilter(a.filterIdx, a.filterInput.Value())
		fields := a.activeFilterFields()
		a.filterIdx = (a.filterIdx + len(fields) - 1) % len(fields)
		a.filterInput.SetValue(a.activeFilterValue(a.filterIdx))
		return a, nil
	case "down", "tab":
		a.setActiveFilter(a.filterIdx, a.filterInput.Value())
		fields := a.activeFilterFields()
		a.filterIdx = (a.filterIdx + 1) % len(fields)
		a.filterInput.SetValue(a.activeFilterValue(a.filterIdx))
		return a, nil
	case "enter":
		a.setActiveFilter(a.filterIdx, a.filterInput.Value())
		a.filterInput.Blur()
		a.focus = focusList
		a.cursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	return a, cmd
}

func (a *App) selectedRefLinks() []RefLink {
	idx := a.cursor
	switch a.tab {
	case TabCars:
		rows := a.cars.Visible()
		if idx < len(rows) {
			return carRefLinks(rows[idx])
		}
	case TabMaintenance:
		rows := a.maint.Visible()
		if idx < len(rows) {
			return maintenanceRefLinks(rows[idx])
		}
	default:
		rows := a.complaints.Visible()
		if idx < len(rows) {
			return complaintRefLinks(rows[idx])
		}
	}
	return nil
}

func (a *App) handleLinksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.focus = focusList
		return a, nil
	case "up", "k":
		if a.linkIdx > 0 {
			a.linkIdx--
		}
		return a, nil
	case "down", "j":
		if a.linkIdx < len(a.links)-1 {
			a.linkIdx++
		}
		return a, nil
	case "enter":
		link := a.links[a.linkIdx]
		// Строка без заполненной ссылки карточку не открывает
		if link.ID == 0 {
			return a, nil
		}
		seq := a.modal.Open(link.Type, link.ID)
		a.focus = focusModal
		return a, a.loadRefCmd(link.Type, link.ID, seq)
	}
	return a, nil
}

// canEditRefModel проверяет права текущей роли на правку справочника
func (a *App) canEditRefModel(modelType string) bool {
	if a.sess.HasRole(models.RoleManager) {
		return true
	}
	if !a.sess.HasRole(models.RoleService) {
		return false
	}
	switch modelType {
	case "failure-node", "recovery-method", "service-company":
		return true
	}
	return false
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal.State == ModalEditing {
		switch msg.String() {
		case "esc":
			a.modal.CancelEdit()
			a.nameInput.Blur()
			a.descInput.Blur()
			return a, nil
		case "tab", "down", "up":
			a.syncDraft()
			a.modalField = (a.modalField + 1) % 2
			a.syncModalFocus()
			return a, nil
		case "enter":
			a.syncDraft()
			if strings.TrimSpace(a.modal.DraftName) == "" {
				a.modal.Err = "Название не может быть пустым"
				return a, nil
			}
			a.nameInput.Blur()
			a.descInput.Blur()
			return a, a.saveRefCmd(a.modal.Type, a.modal.ID,
				strings.TrimSpace(a.modal.DraftName), a.modal.DraftDescription, a.modal.Seq())
		}

		var cmd tea.Cmd
		if a.modalField == 0 {
			a.nameInput, cmd = a.nameInput.Update(msg)
		} else {
			a.descInput, cmd = a.descInput.Update(msg)
		}
		return a, cmd
	}

	switch msg.String() {
	case "esc", "q":
		a.modal.Close()
		a.focus = focusList
		return a, nil
	case "e":
		if a.modal.State != ModalViewing {
			return a, nil
		}
		if !a.canEditRefModel(a.modal.Type) {
			a.modal.Err = "Недостаточно прав для правки"
			return a, nil
		}
		a.modal.StartEdit()
		a.nameInput.SetValue(a.modal.DraftName)
		a.descInput.SetValue(a.modal.DraftDescription)
		a.modalField = 0
		a.syncModalFocus()
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) syncDraft() {
	a.modal.DraftName = a.nameInput.Value()
	a.modal.DraftDescription = a.descInput.Value()
}

func (a *App) syncModalFocus() {
	a.nameInput.Blur()
	a.descInput.Blur()
	if a.modalField == 0 {
		a.nameInput.Focus()
	} else {
		a.descInput.Focus()
	}
}

// === View ===

// View отрисовывает экран
func (a *App) View() string {
	if a.focus == focusLogin {
		return a.viewLogin()
	}

	var b strings.Builder
	b.WriteString(a.viewTabs())
	b.WriteString("\n")

	if a.loading {
		b.WriteString(a.theme.Muted.Render("Загрузка..."))
		b.WriteString("\n")
	} else {
		b.WriteString(a.viewTable())
	}

	if a.focus == focusFilter {
		b.WriteString("\n")
		b.WriteString(a.viewFilterPanel())
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())

	base := b.String()

	switch a.focus {
	case focusLinks:
		return a.overlay(base, a.viewLinks())
	case focusModal:
		return a.overlay(base, a.viewModal())
	case focusDraft:
		return a.overlay(base, a.viewDraft())
	}
	return base
}

// overlay рисует окно поверх списка, список под ним не перерисовывается
func (a *App) overlay(base, window string) string {
	box := a.theme.ModalBox.Render(window)
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box,
			lipgloss.WithWhitespaceChars(" "))
	}
	return base + "\n" + box
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString(a.theme.Title.Render("СИЛАНТ - электронная сервисная книжка"))
	b.WriteString("\n\n")
	b.WriteString("Вход:\n")
	b.WriteString("  Логин:  " + a.userInput.View() + "\n")
	b.WriteString("  Пароль: " + a.passInput.View() + "\n\n")
	b.WriteString("Проверка машины без входа:\n")
	b.WriteString("  VIN:    " + a.vinInput.View() + "\n")

	if a.loading {
		b.WriteString("\n" + a.theme.Muted.Render("Загрузка..."))
	}
	if a.loginErr != "" {
		b.WriteString("\n" + a.theme.Error.Render(a.loginErr))
	}
	if a.vinCard != nil {
		b.WriteString("\n\n" + a.theme.Title.Render("Машина "+a.vinCard.VIN) + "\n")
		b.WriteString(fmt.Sprintf("  Модель техники:            %s\n", a.vinCard.VehicleModel))
		b.WriteString(fmt.Sprintf("  Двигатель:                 %s (зав. № %s)\n", a.vinCard.EngineModel, a.vinCard.EngineNumber))
		b.WriteString(fmt.Sprintf("  Трансмиссия:               %s (зав. № %s)\n", a.vinCard.TransmissionModel, a.vinCard.TransmissionNumber))
		b.WriteString(fmt.Sprintf("  Ведущий мост:              %s (зав. № %s)\n", a.vinCard.DriveAxle, a.vinCard.DriveAxleNumber))
		b.WriteString(fmt.Sprintf("  Управляемый мост:          %s (зав. № %s)\n", a.vinCard.SteeringAxle, a.vinCard.SteeringAxleNumber))
	}

	b.WriteString("\n\n" + a.theme.Muted.Render("tab - переключение полей, enter - отправить, esc - выход"))
	return b.String()
}

func (a *App) viewTabs() string {
	parts := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if Tab(i) == a.tab {
			parts = append(parts, a.theme.TabActive.Render(title))
		} else {
			parts = append(parts, a.theme.TabInactive.Render(title))
		}
	}
	user := a.theme.Muted.Render(fmt.Sprintf("  %s (%s)", a.sess.Name, a.sess.Role))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + user
}

func (a *App) viewTable() string {
	switch a.tab {
	case TabCars:
		return renderRows(a.theme, a.cursor,
			[]string{"№", "VIN", "Модель", "Двигатель", "Трансмиссия", "Клиент", "Сервисная компания"},
			carsTableRows(a.cars))
	case TabMaintenance:
		return renderRows(a.theme, a.cursor,
			[]string{"№", "VIN", "Вид ТО", "Дата", "Заказ-наряд", "Сервисная компания"},
			maintTableRows(a.maint))
	default:
		return renderRows(a.theme, a.cursor,
			[]string{"№", "VIN", "Дата отказа", "Узел отказа", "Способ восстановления", "Простой"},
			complaintTableRows(a.complaints))
	}
}

func carsTableRows(l *List[client.CarRow]) [][]string {
	visible := l.Visible()
	rows := make([][]string, 0, len(visible))
	for i, r := range visible {
		rows = append(rows, []string{
			formatID(uint(l.Ordinal(i))), r.VIN, r.VehicleModel, r.EngineModel,
			r.TransmissionModel, r.Client, r.ServiceCompany,
		})
	}
	return rows
}

func maintTableRows(l *List[client.MaintenanceRow]) [][]string {
	visible := l.Visible()
	rows := make([][]string, 0, len(visible))
	for i, r := range visible {
		rows = append(rows, []string{
			formatID(uint(l.Ordinal(i))), r.VIN, r.MaintenanceType,
			r.MaintenanceDate, r.OrderNumber, r.ServiceCompany,
		})
	}
	return rows
}

func complaintTableRows(l *List[client.ComplaintRow]) [][]string {
	visible := l.Visible()
	rows := make([][]string, 0, len(visible))
	for i, r := range visible {
		rows = append(rows, []string{
			formatID(uint(l.Ordinal(i))), r.VIN, r.DateOfFailure,
			r.NodeFailure, r.RecoveryMethod, r.EquipmentDowntime,
		})
	}
	return rows
}

// renderRows отрисовывает таблицу с выделенной строкой
func renderRows(theme Theme, cursor int, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(theme.Header.Render(joinCells(headers, widths)))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(theme.Muted.Render("Нет данных"))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range rows {
		line := joinCells(row, widths)
		if i == cursor {
			b.WriteString(theme.RowSelected.Render(line))
		} else {
			b.WriteString(theme.Row.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = lipgloss.NewStyle().Width(widths[i] + 2).Render(cell)
	}
	return strings.Join(padded, "")
}

func (a *App) viewFilterPanel() string {
	fields := a.activeFilterFields()
	var b strings.Builder
	b.WriteString(a.theme.Title.Render("Фильтры") + a.theme.Muted.Render("  (enter - применить, esc - закрыть, c в списке - сбросить)"))
	b.WriteString("\n")
	for i, f := range fields {
		label := f.Label
		value := a.activeFilterValue(i)
		if i == a.filterIdx {
			b.WriteString(a.theme.FilterActive.Render("> "+label+": ") + a.filterInput.View())
		} else {
			style := a.theme.FilterLabel
			if value != "" {
				style = a.theme.FilterActive
			}
			b.WriteString(style.Render("  " + label + ": " + value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewLinks() string {
	var b strings.Builder
	b.WriteString(a.theme.ModalTitle.Render("Открыть карточку справочника"))
	b.WriteString("\n\n")
	for i, link := range a.links {
		line := fmt.Sprintf("%s (%s)", link.Name, link.Type)
		if i == a.linkIdx {
			b.WriteString(a.theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(a.theme.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + a.theme.Muted.Render("enter - открыть, esc - назад"))
	return b.String()
}

func (a *App) viewModal() string {
	var b strings.Builder

	switch a.modal.State {
	case ModalLoading:
		b.WriteString(a.theme.ModalTitle.Render("Карточка справочника"))
		b.WriteString("\n\n" + a.theme.Muted.Render("Загрузка..."))
	case ModalViewing:
		b.WriteString(a.theme.ModalTitle.Render(a.modal.Item.Name))
		b.WriteString("\n\n")
		b.WriteString("Описание: " + a.modal.Item.Description)
		b.WriteString("\n\n" + a.theme.Muted.Render("e - править, esc - закрыть"))
	case ModalEditing:
		b.WriteString(a.theme.ModalTitle.Render("Правка записи справочника"))
		b.WriteString("\n\n")
		b.WriteString("Название: " + a.nameInput.View() + "\n")
		b.WriteString("Описание: " + a.descInput.View())
		b.WriteString("\n\n" + a.theme.Muted.Render("enter - сохранить, tab - поле, esc - отмена"))
	}

	if a.modal.Err != "" {
		b.WriteString("\n" + a.theme.Error.Render(a.modal.Err))
	}
	return b.String()
}

func (a *App) viewDraft() string {
	d := a.drafts[a.tab]
	if d == nil {
		return ""
	}

	var b strings.Builder
	titles := map[Tab]string{
		TabCars:        "Новая машина",
		TabMaintenance: "Новая запись ТО",
		TabComplaints:  "Новая рекламация",
	}
	b.WriteString(a.theme.ModalTitle.Render(titles[a.tab]))
	b.WriteString("\n\n")

	for i, f := range d.Fields() {
		label := f.label
		if f.required {
			label += " *"
		}
		if i == d.Index() {
			b.WriteString(a.theme.FilterActive.Render("> "+label+": ") + a.draftInput.View())
		} else {
			b.WriteString(a.theme.FilterLabel.Render("  " + label + ": " + d.Value(f.key)))
		}
		b.WriteString("\n")
	}

	if d.Sending {
		b.WriteString("\n" + a.theme.Muted.Render("Отправка..."))
	}
	if d.Err != "" {
		b.WriteString("\n" + a.theme.Error.Render(d.Err))
	}
	b.WriteString("\n" + a.theme.Muted.Render("tab - поле, enter на последнем поле - отправить, esc - отложить черновик"))
	return b.String()
}

func (a *App) viewStatusBar() string {
	var info []string
	switch a.tab {
	case TabCars:
		info = append(info, fmt.Sprintf("Стр. %d/%d по %d", a.cars.Page(), a.cars.TotalPages(), a.cars.PerPage()))
		if a.cars.HasFilters() {
			info = append(info, "фильтры активны")
		}
	case TabMaintenance:
		info = append(info, fmt.Sprintf("Стр. %d/%d по %d", a.maint.Page(), a.maint.TotalPages(), a.maint.PerPage()))
		if a.maint.HasFilters() {
			info = append(info, "фильтры активны")
		}
	default:
		info = append(info, fmt.Sprintf("Стр. %d/%d по %d", a.complaints.Page(), a.complaints.TotalPages(), a.complaints.PerPage()))
		if a.complaints.HasFilters() {
			info = append(info, "фильтры активны")
		}
	}
	info = append(info, "сортировка: "+a.sortLabel())
	if a.status != "" {
		info = append(info, a.status)
	}
	help := "1/2/3 - вкладки, f - фильтры, c - сброс, s/S - сортировка, a - создать, ←/→ - страницы, o - размер, enter - карточка, r - обновить, L - выход, q - закрыть"
	return a.theme.StatusBar.Render(strings.Join(info, " | ") + "\n" + a.theme.Muted.Render(help))
}
