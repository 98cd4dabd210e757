// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the plain-terminal mode (documind --plain): a
// liner-backed REPL with slash commands for session management, file
// uploads, and export, sharing the same managers as the TUI.
package cli
