// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		name  string
		theme string
		want  Palette
	}{
		{"dark", "dark", DarkPalette},
		{"light", "light", LightPalette},
		{"unknown falls back to dark", "solarized", DarkPalette},
		{"empty falls back to dark", "", DarkPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaletteFor(tt.theme); got != tt.want {
				t.Errorf("PaletteFor(%q) returned wrong palette", tt.theme)
			}
		})
	}
}

func TestNewTheme(t *testing.T) {
	th := New("light")
	if th.Name != "light" {
		t.Errorf("Name = %q, want light", th.Name)
	}
	if th.Palette != LightPalette {
		t.Error("light theme did not use LightPalette")
	}

	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("SetSize stored %dx%d", th.Width, th.Height)
	}
}
