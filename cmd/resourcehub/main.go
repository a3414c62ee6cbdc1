// Command resourcehub is a terminal console for the ResourceHub
// facility-management service. It shows the notification center with an
// unread badge kept fresh by a background poller.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/th33k/resourcehub-console/internal/app"
	"github.com/th33k/resourcehub-console/internal/cache"
	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/notify"
)

func main() {
	configPath := model.DefaultConfigPath()
	if p := os.Getenv("RESOURCEHUB_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// The snapshot cache is optional: a failure to open it only costs
	// the warm start, not the session.
	var snapshotCache notify.Cache
	c, err := cache.NewSQLiteCache(cacheDBPath())
	if err == nil {
		snapshotCache = c
		defer c.Close()
	} else {
		fmt.Fprintf(os.Stderr, "snapshot cache unavailable: %v\n", err)
	}

	program := tea.NewProgram(
		app.New(cfg, configPath, snapshotCache),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		log.Fatalf("running console: %v", err)
	}
}

// cacheDBPath returns the location of the local snapshot database.
func cacheDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "resourcehub.db")
	}
	return filepath.Join(home, ".config", "resourcehub", "cache.db")
}
