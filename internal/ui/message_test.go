package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/lmtt/internal/modules"
)

func TestRenderMessage(t *testing.T) {
	theme := ThemeCharm()

	tests := []struct {
		msgType MessageType
		symbol  string
	}{
		{MessageInfo, SymbolInfo},
		{MessageSuccess, SymbolSuccess},
		{MessageWarning, SymbolWarning},
		{MessageError, SymbolError},
	}
	for _, tt := range tests {
		out := RenderMessage("hello", tt.msgType, theme)
		assert.Contains(t, out, tt.symbol+" hello")
	}

	assert.Empty(t, RenderMessage("", MessageError, theme))
}

func TestGetTheme(t *testing.T) {
	for _, name := range AvailableThemes() {
		assert.Equal(t, name, GetTheme(name).Name)
	}
	assert.Equal(t, "charm", GetTheme("solarized").Name)
}

func TestPrinter_Results(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, nil)

	summary := p.Results([]modules.ModuleResult{
		{Name: "gtk", Duration: 40 * time.Millisecond},
		{Name: "vscode", Duration: 1500 * time.Millisecond},
		{Name: "waybar", Duration: 5 * time.Millisecond, Err: errors.New("config not found")},
	}, time.Second)

	assert.Equal(t, modules.Summary{Succeeded: 2, Failed: 1}, summary)
	out := buf.String()
	assert.Contains(t, out, "40ms")
	assert.Contains(t, out, "1.5s (slow)")
	assert.Contains(t, out, "config not found")
	assert.Contains(t, out, "2 succeeded, 1 failed")
}
