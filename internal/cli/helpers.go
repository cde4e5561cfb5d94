package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"reelops/internal/backend"
	"reelops/internal/config"
	"reelops/internal/pipeline"
	"reelops/internal/session"
)

const reelopsDirName = ".reelops"

// reelopsPath returns the path to a file inside .reelops/.
func reelopsPath(parts ...string) string {
	elems := append([]string{reelopsDirName}, parts...)
	return filepath.Join(elems...)
}

// mustConfig loads the workspace config, erroring if reelops is not
// initialized here.
func mustConfig() (*config.Config, error) {
	cfgPath := reelopsPath("config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("reelops not initialized. Run: reelops init")
	}
	return config.Load(cfgPath)
}

// mustStore opens the state database.
func mustStore() (*session.Store, error) {
	if _, err := os.Stat(reelopsDirName); os.IsNotExist(err) {
		return nil, fmt.Errorf("reelops not initialized. Run: reelops init")
	}
	return session.New(reelopsPath("reelops.db"))
}

// newCoordinator assembles the pipeline from config and store. In demo
// mode no backend client is attached and the simulator finalizes.
func newCoordinator(cfg *config.Config, store *session.Store) *pipeline.Coordinator {
	var be pipeline.Backend
	if !cfg.DemoMode {
		be = backend.New(cfg.BackendURL)
	}
	return pipeline.NewCoordinator(pipeline.Options{
		Backend:  be,
		Sessions: store,
		Stages:   cfg.Stages,
		Upload:   cfg.Upload,
	})
}
