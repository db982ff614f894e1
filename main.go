package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"selex/internal/config"
	"selex/internal/domain"
	"selex/internal/eventbus"
	"selex/internal/mirror"
	"selex/internal/tree"
	"selex/internal/ui"
	"selex/internal/ui/services/events"
	"selex/internal/ui/services/selection"
)

func main() {
	// Parse command line arguments
	var treeFile string
	var configPath string
	flag.StringVar(&treeFile, "file", "", "TOML tree file to browse")
	flag.StringVar(&treeFile, "f", "", "TOML tree file to browse (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if treeFile == "" && flag.NArg() > 0 {
		treeFile = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("selex.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if treeFile == "" {
		treeFile = cfg.TreeFile
	}

	// Build the data tree
	store := tree.NewStore(bus)
	store.SetValueFunc(func(n *domain.Node) string { return n.Value })

	var root *domain.Node
	if treeFile != "" {
		root, err = tree.LoadFile(treeFile)
		if err != nil {
			fmt.Printf("Error loading tree: %v\n", err)
			os.Exit(1)
		}
	} else {
		root = demoTree()
	}
	store.SetRoot(root)

	// Open the offline selection mirror
	treeID := treeFile
	if treeID == "" {
		treeID = "demo"
	}
	mirrorPath := cfg.MirrorPath
	if mirrorPath == "" {
		configDir, derr := os.UserConfigDir()
		if derr != nil {
			configDir = "."
		}
		mirrorPath = filepath.Join(configDir, "selex", "mirror.db")
	}
	var snap mirror.Snapshot
	mirrorStore, err := mirror.Open(ctx, mirrorPath)
	if err != nil {
		log.Printf("Mirror unavailable: %v", err)
	} else {
		defer mirrorStore.Close()
		snap, err = mirrorStore.Load(ctx, treeID)
		if err != nil {
			log.Printf("Could not restore mirrored selection: %v", err)
		}
	}

	// Create the selection notification bus and the UI model
	notifier := events.NewBus()
	uiModel := ui.NewModel(cfg, store, bus, notifier, snap.NodeIDs, snap.Primary)

	// Mirror the selection whenever it changes
	if mirrorStore != nil && cfg.UISettings.MirrorOnChange {
		persist := func(items []*domain.Node) {
			ids := make([]string, 0, len(items))
			for _, n := range items {
				ids = append(ids, n.ID)
			}
			primary := ""
			if sel := uiModel.Engine().Selected(); sel != nil {
				primary = sel.ID
			}
			go func() {
				if err := mirrorStore.Save(ctx, treeID, mirror.Snapshot{NodeIDs: ids, Primary: primary}); err != nil {
					log.Printf("Mirror save failed: %v", err)
					return
				}
				bus.Publish(eventbus.SelectionMirroredEvent{Count: len(ids)})
			}()
		}
		notifier.Subscribe(selection.EventAfterSelect, func(e events.Event) bool {
			if ev, ok := e.(selection.AfterSelectEvent); ok {
				persist(ev.Items)
			}
			return true
		})
		notifier.Subscribe(selection.EventAfterDeselect, func(e events.Event) bool {
			if ev, ok := e.(selection.AfterDeselectEvent); ok {
				persist(ev.Items)
			}
			return true
		})
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventNodesChanged, forward)
	bus.Subscribe(eventbus.EventTreeLoaded, forward)
	bus.Subscribe(eventbus.EventSelectionMirrored, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	bus.Publish(eventbus.AppReadyEvent{HasExistingConfig: configPath != ""})

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}

// demoTree builds the sample catalog shown when no tree file is given
func demoTree() *domain.Node {
	root := &domain.Node{ID: "root", Title: "Demo Catalog", Kind: domain.KindBranch}
	groups := []struct {
		id    string
		title string
		items []string
	}{
		{"fruit", "Fruit", []string{"Apple", "Banana", "Cherry", "Date"}},
		{"veget", "Vegetables", []string{"Asparagus", "Beet", "Carrot"}},
		{"grain", "Grains", []string{"Barley", "Oat", "Rye", "Spelt", "Wheat"}},
	}
	for _, g := range groups {
		branch := &domain.Node{ID: g.id, Title: g.title, Kind: domain.KindBranch, Parent: root}
		for _, item := range g.items {
			id := fmt.Sprintf("%s-%s", g.id, item)
			branch.Children = append(branch.Children, &domain.Node{
				ID:     id,
				Title:  item,
				Value:  item,
				Kind:   domain.KindLeaf,
				Parent: branch,
			})
		}
		root.Children = append(root.Children, branch)
	}
	return root
}
