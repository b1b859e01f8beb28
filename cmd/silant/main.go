package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/silant-service-api/internal/client"
	"github.com/user/silant-service-api/internal/clientcfg"
	"github.com/user/silant-service-api/internal/session"
	"github.com/user/silant-service-api/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "путь к конфигурации клиента (по умолчанию ~/.config/silant/config.toml)")
	serverURL := flag.String("server", "", "адрес API-сервера (переопределяет конфигурацию)")
	flag.Parse()

	cfg, err := clientcfg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "silant: %v\n", err)
		return 1
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	api, err := client.NewClient(cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "silant: %v\n", err)
		return 1
	}

	store := session.NewStore(cfg.SessionPath)

	program := tea.NewProgram(ui.NewApp(api, store, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "silant: %v\n", err)
		return 1
	}
	return 0
}
