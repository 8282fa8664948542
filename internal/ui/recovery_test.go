package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// mockModel is a test UI model
type mockModel struct {
	panicOnInit   bool
	panicOnUpdate bool
	panicOnView   bool
	updateCount   int
}

func (m *mockModel) Init() tea.Cmd {
	if m.panicOnInit {
		panic("init panic test")
	}
	return nil
}

func (m *mockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.panicOnUpdate {
		panic("update panic test")
	}
	m.updateCount++
	return m, nil
}

func (m *mockModel) View() string {
	if m.panicOnView {
		panic("view panic test")
	}
	return "Test UI"
}

func TestSafeUIWrapperPassthrough(t *testing.T) {
	model := &mockModel{}
	wrapper := NewSafeUIWrapper(model, zap.NewNop())

	if cmd := wrapper.Init(); cmd != nil {
		t.Error("Expected nil command from Init")
	}

	if _, cmd := wrapper.Update(nil); cmd != nil {
		t.Error("Expected nil command from Update")
	}
	if model.updateCount != 1 {
		t.Errorf("Expected inner model to receive the update, count = %d", model.updateCount)
	}

	if view := wrapper.View(); view != "Test UI" {
		t.Errorf("Expected inner view, got: %s", view)
	}
}

func TestSafeUIWrapperKeepsUpdatedModel(t *testing.T) {
	model := &mockModel{}
	wrapper := NewSafeUIWrapper(model, zap.NewNop())

	// Each update must reach the model the previous update returned,
	// not the one captured at construction time.
	wrapper.Update(nil)
	wrapper.Update(nil)
	wrapper.Update(nil)

	if model.updateCount != 3 {
		t.Errorf("Expected 3 updates on the live model, got %d", model.updateCount)
	}
}

func TestSafeUIWrapperRecoversPanics(t *testing.T) {
	model := &mockModel{panicOnInit: true, panicOnUpdate: true, panicOnView: true}
	wrapper := NewSafeUIWrapper(model, zap.NewNop())

	if cmd := wrapper.Init(); cmd != nil {
		t.Error("Expected nil command after Init panic")
	}

	returned, cmd := wrapper.Update(nil)
	if cmd != nil {
		t.Error("Expected nil command after Update panic")
	}
	if returned != wrapper {
		t.Error("Expected wrapper to stay the active model after a panic")
	}

	view := wrapper.View()
	if view != "UI Error: View crashed. Press Ctrl+C to exit." {
		t.Errorf("Expected error message, got: %s", view)
	}
}
