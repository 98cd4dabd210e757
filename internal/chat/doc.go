// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the session lifecycle and the send protocol on
// top of the api client, against pluggable rendering, confirmation and
// notification surfaces.
package chat
