package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	handler := NewInterruptHandler(nil, "Import")
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.WasInterrupted())
}

func TestInterruptShowsMessageOnce(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output, "Optimization")
	handler.hint = "Nothing was saved."

	handler.interrupt()
	handler.interrupt()

	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), "Optimization interrupted!"))
	assert.Contains(t, output.String(), "Nothing was saved.")
}

func TestInterruptWithoutHint(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output, "Import")

	handler.showInterruptMessage()

	assert.Contains(t, output.String(), "Import interrupted!")
	assert.NotContains(t, output.String(), InfoIcon)
}

func TestHandleInterruptsParentCancel(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output, "Import")

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, "")

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	cancel()
	<-ctx.Done()

	assert.False(t, handler.WasInterrupted(), "a parent cancel is not an interrupt")
	assert.Empty(t, output.String())
}
