package asr

import (
	"context"
	"sync"

	"github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/inter"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
)

// Manager holds the active recognition provider. The provider is selected
// once at bootstrap; the lock only guards against a future hot-swap path.
type Manager struct {
	mu       sync.RWMutex
	provider inter.Provider
	config   inter.Config
}

// NewManager creates a manager with no provider bound yet.
func NewManager(config inter.Config) *Manager {
	return &Manager{config: config}
}

// SetProvider binds the recognition provider.
func (m *Manager) SetProvider(provider inter.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = provider
}

// Provider returns the bound provider.
func (m *Manager) Provider() inter.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.provider
}

// Config returns the recognition settings.
func (m *Manager) Config() inter.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Transcribe delegates to the bound provider.
func (m *Manager) Transcribe(ctx context.Context, audioPath string) (string, error) {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return "", errors.New(errors.KindTranscription, "asr.transcribe", "no recognition provider configured")
	}
	return provider.Transcribe(ctx, audioPath)
}
