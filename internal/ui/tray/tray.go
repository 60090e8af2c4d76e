package tray

import (
	"fmt"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Apnea Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnStop        func()
	OnSelect      func(discipline.Code)
	OnPreferences func()
	OnQuit        func()
}

// Menu is the subset of desktop.App the tray needs.
type Menu interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

var _ Menu = desktop.App(nil)

// Manager handles system tray state.
type Manager struct {
	app        Menu
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	selectItem *fyne.MenuItem
	choices    map[discipline.Code]*fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app Menu, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		choices:   make(map[discipline.Code]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true

	items := make([]*fyne.MenuItem, 0, len(discipline.Codes()))
	for _, config := range discipline.All() {
		code := config.Code
		item := fyne.NewMenuItem(config.Name, func() {
			if manager.callbacks.OnSelect != nil {
				manager.callbacks.OnSelect(code)
			}
		})
		manager.choices[code] = item
		items = append(items, item)
	}
	manager.selectItem = fyne.NewMenuItem("Discipline", nil)
	manager.selectItem.ChildMenu = fyne.NewMenu("", items...)

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		show,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.stopItem,
		manager.selectItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	app.SetSystemTrayMenu(manager.menu)

	return manager
}

// Update reflects snapshot in the menu.
func (manager *Manager) Update(snapshot session.Snapshot) {
	manager.statusItem.Label = StatusLine(snapshot)
	manager.startItem.Disabled = snapshot.Running
	manager.stopItem.Disabled = !snapshot.Running
	manager.selectItem.Disabled = snapshot.Running
	for code, item := range manager.choices {
		item.Checked = code == snapshot.Discipline.Code
	}
	manager.refreshMenu()
}

// StatusLine renders the disabled status entry of the menu.
func StatusLine(snapshot session.Snapshot) string {
	if !snapshot.Phase.Active() {
		return fmt.Sprintf("Status: %s %s", snapshot.Discipline.Code, snapshot.PhaseTitle)
	}
	return fmt.Sprintf("Status: %s %s %s", snapshot.Discipline.Code, snapshot.PhaseTitle, snapshot.DisplayedTime())
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
