// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the DocuMind TUI.
//
// Colors are organized in a Palette per theme and assembled into a Theme
// of lipgloss styles. The active theme follows the persisted user setting
// rather than terminal background detection.
package styles
