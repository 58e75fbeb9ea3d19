// Package ui draws the overlay widgets shown on top of a scene: the HUD,
// scene picker, sound controls, node details and typewriter caption.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	Accent         rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the dark violet theme used across the app.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 17, G: 24, B: 39, A: 230},
		PanelBorder:    rl.Color{R: 55, G: 65, B: 81, A: 255},
		SectionHeader:  rl.Color{R: 167, G: 139, B: 250, A: 255},
		LabelColor:     rl.Color{R: 156, G: 163, B: 175, A: 255},
		ValueColor:     rl.Color{R: 243, G: 244, B: 246, A: 255},
		MutedColor:     rl.Color{R: 107, G: 114, B: 128, A: 255},
		Accent:         rl.Color{R: 139, G: 92, B: 246, A: 255},
		BarBg:          rl.Color{R: 31, G: 41, B: 55, A: 255},
		BarFill:        rl.Color{R: 139, G: 92, B: 246, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  20,
	}
}

// MatchColor returns the colour band for a match score.
func MatchColor(match int) rl.Color {
	switch {
	case match >= 90:
		return rl.Color{R: 74, G: 222, B: 128, A: 255}
	case match >= 80:
		return rl.Color{R: 96, G: 165, B: 250, A: 255}
	case match >= 70:
		return rl.Color{R: 250, G: 204, B: 21, A: 255}
	}
	return rl.Color{R: 156, G: 163, B: 175, A: 255}
}
