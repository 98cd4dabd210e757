// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI building blocks for the
// DocuMind TUI: message bubbles, the session sidebar, source snippet
// blocks, toasts, the confirmation modal, and the status bar.
package components
