// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/documind/documind-tui/internal/ui/styles"
)

// ToastKind categorizes a toast for styling and default duration.
type ToastKind int

const (
	ToastInfo    ToastKind = iota // neutral status updates
	ToastSuccess                  // completed operations
	ToastWarning                  // degraded but recoverable
	ToastError                    // failed operations
)

// Default display durations per kind. Errors linger longer so the user
// can read them before the toast expires.
const (
	InfoDuration    = 4 * time.Second
	SuccessDuration = 4 * time.Second
	WarningDuration = 6 * time.Second
	ErrorDuration   = 8 * time.Second
)

// Toast is a transient notification shown above the status bar.
type Toast struct {
	ID        string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

func newToast(message string, kind ToastKind, d time.Duration) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// NewInfoToast creates a neutral informational toast.
func NewInfoToast(message string) Toast {
	return newToast(message, ToastInfo, InfoDuration)
}

// NewSuccessToast creates a success toast.
func NewSuccessToast(message string) Toast {
	return newToast(message, ToastSuccess, SuccessDuration)
}

// NewWarningToast creates a warning toast.
func NewWarningToast(message string) Toast {
	return newToast(message, ToastWarning, WarningDuration)
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return newToast(message, ToastError, ErrorDuration)
}

// Expired reports whether the toast should be removed at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

func (t Toast) style(theme *styles.Theme) lipgloss.Style {
	switch t.Kind {
	case ToastSuccess:
		return theme.ToastSuccess
	case ToastWarning:
		return theme.ToastWarning
	case ToastError:
		return theme.ToastError
	default:
		return theme.ToastInfo
	}
}

func (t Toast) icon() string {
	switch t.Kind {
	case ToastSuccess:
		return "✓"
	case ToastWarning:
		return "!"
	case ToastError:
		return "✗"
	default:
		return "·"
	}
}

// Render draws the toast constrained to maxWidth.
func (t Toast) Render(theme *styles.Theme, maxWidth int) string {
	s := t.style(theme)
	if maxWidth > 4 {
		s = s.MaxWidth(maxWidth)
	}
	return s.Render(t.icon() + " " + t.Message)
}

// ToastStack holds the active toasts, newest last.
type ToastStack struct {
	toasts []Toast
}

// Push appends a toast to the stack.
func (s *ToastStack) Push(t Toast) {
	s.toasts = append(s.toasts, t)
}

// Prune drops expired toasts and reports whether any remain.
func (s *ToastStack) Prune(now time.Time) bool {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return len(s.toasts) > 0
}

// Len returns the number of active toasts.
func (s *ToastStack) Len() int { return len(s.toasts) }

// Render draws the stack vertically, oldest on top.
func (s *ToastStack) Render(theme *styles.Theme, maxWidth int) string {
	if len(s.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		rendered = append(rendered, t.Render(theme, maxWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
