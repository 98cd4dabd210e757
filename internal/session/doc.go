// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds client-side state: the authenticated identity, the
// active chat id, and persisted user settings.
package session
