// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload implements sequential document uploads with client-side
// size checks and quota-aware termination, plus the files/quota surface.
package upload
