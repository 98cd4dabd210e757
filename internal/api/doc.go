// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the DocuMind server. All
// authenticated traffic flows through one chokepoint that injects the
// bearer token, fails fast when none is stored, and clears credentials
// on a 401. The client never retries.
package api
