package ui

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/resumefx/components"
	"github.com/pthm-cable/resumefx/systems"
)

func TestTypewriterReveal(t *testing.T) {
	opts := TypewriterOptions{Speed: 30 * time.Millisecond}
	tw := NewTypewriter("Hi there", opts, nil)

	if got := tw.Visible(); got != "" {
		t.Fatalf("initial visible = %q, want empty", got)
	}

	tw.Advance(29 * time.Millisecond)
	if got := tw.Visible(); got != "" {
		t.Errorf("after 29ms visible = %q, want empty", got)
	}

	tw.Advance(1 * time.Millisecond)
	if got := tw.Visible(); got != "H" {
		t.Errorf("after 30ms visible = %q, want %q", got, "H")
	}

	tw.Advance(60 * time.Millisecond)
	if got := tw.Visible(); got != "Hi " {
		t.Errorf("after 90ms visible = %q, want %q", got, "Hi ")
	}
	if tw.Done() {
		t.Error("Done before all runes shown")
	}

	tw.Advance(time.Second)
	if got := tw.Visible(); got != "Hi there" {
		t.Errorf("final visible = %q", got)
	}
	if !tw.Done() {
		t.Error("expected Done")
	}
}

func TestTypewriterDelay(t *testing.T) {
	opts := TypewriterOptions{Speed: 10 * time.Millisecond, Delay: 100 * time.Millisecond}
	tw := NewTypewriter("ab", opts, nil)

	tw.Advance(105 * time.Millisecond)
	if got := tw.Visible(); got != "" {
		t.Errorf("visible during delay = %q", got)
	}
	tw.Advance(5 * time.Millisecond)
	if got := tw.Visible(); got != "a" {
		t.Errorf("visible = %q, want %q", got, "a")
	}
	tw.Advance(10 * time.Millisecond)
	if got := tw.Visible(); got != "ab" {
		t.Errorf("visible = %q, want %q", got, "ab")
	}
}

func TestTypewriterCallbacks(t *testing.T) {
	var keys []rune
	completed := 0
	opts := TypewriterOptions{
		Speed:      10 * time.Millisecond,
		Jitter:     5 * time.Millisecond,
		OnKey:      func(r rune) { keys = append(keys, r) },
		OnComplete: func() { completed++ },
	}
	tw := NewTypewriter("a b\tc", opts, rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		tw.Advance(5 * time.Millisecond)
	}

	if string(keys) != "abc" {
		t.Errorf("keys = %q, want %q", string(keys), "abc")
	}
	if completed != 1 {
		t.Errorf("OnComplete called %d times, want 1", completed)
	}

	tw.Reset("xy")
	if tw.Done() || tw.Visible() != "" {
		t.Fatal("Reset did not restart")
	}
	tw.Advance(time.Second)
	if completed != 2 {
		t.Errorf("OnComplete after reset called %d times total, want 2", completed)
	}
}

func TestTypewriterJitterBounds(t *testing.T) {
	opts := TypewriterOptions{Speed: 30 * time.Millisecond, Jitter: 10 * time.Millisecond}
	text := "abcdefghijklmnopqrstuvwxyz"
	tw := NewTypewriter(text, opts, rand.New(rand.NewSource(42)))

	// Every rune needs at least Speed and at most Speed+Jitter
	tw.Advance(time.Duration(len(text)) * 30 * time.Millisecond)
	if n := len(tw.Visible()); n > len(text) {
		t.Fatalf("visible %d runes", n)
	}
	tw.Advance(time.Duration(len(text)) * 10 * time.Millisecond)
	if !tw.Done() {
		t.Errorf("not done after worst-case duration, visible %q", tw.Visible())
	}
}

func TestTypewriterEmpty(t *testing.T) {
	done := false
	tw := NewTypewriter("", TypewriterOptions{OnComplete: func() { done = true }}, nil)
	tw.Advance(time.Millisecond)
	if !tw.Done() || !done {
		t.Error("empty text should complete on first advance")
	}
}

func TestCursorAlpha(t *testing.T) {
	opts := TypewriterOptions{Speed: time.Hour, Blink: 600 * time.Millisecond}
	tw := NewTypewriter("x", opts, nil)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 1},
		{300 * time.Millisecond, 0.5},
		{600 * time.Millisecond, 0},
		{900 * time.Millisecond, 0.5},
		{1200 * time.Millisecond, 1},
	}

	var elapsed time.Duration
	for _, tt := range tests {
		tw.Advance(tt.at - elapsed)
		elapsed = tt.at
		if got := tw.CursorAlpha(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CursorAlpha at %v = %v, want %v", tt.at, got, tt.want)
		}
	}

	hidden := NewTypewriter("x", TypewriterOptions{}, nil)
	if a := hidden.CursorAlpha(); a != 0 {
		t.Errorf("CursorAlpha with no blink = %v, want 0", a)
	}
}

func TestMatchColor(t *testing.T) {
	tests := []struct {
		match int
		want  uint8 // green channel distinguishes the bands
	}{
		{95, 222},
		{90, 222},
		{89, 165},
		{80, 165},
		{75, 204},
		{70, 204},
		{69, 163},
		{0, 163},
	}
	for _, tt := range tests {
		if got := MatchColor(tt.match).G; got != tt.want {
			t.Errorf("MatchColor(%d).G = %d, want %d", tt.match, got, tt.want)
		}
	}
}

func TestNodeDetails(t *testing.T) {
	job := systems.GraphNode{}
	job.Name = "DevOps Engineer"
	job.Kind = components.KindJob
	job.Salary = 110000
	job.Demand = 95

	rows := NodeDetails(job, 3)
	want := [][2]string{
		{"Type", "job"},
		{"Salary", "$110k"},
		{"Demand", "95%"},
		{"Links", "3"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}

	skill := systems.GraphNode{Pinned: true}
	skill.Kind = components.KindSkill
	skill.Category = "Cloud"
	rows = NodeDetails(skill, 1)
	if rows[1] != [2]string{"Category", "Cloud"} {
		t.Errorf("skill row = %v", rows[1])
	}
	if rows[len(rows)-1] != [2]string{"Pinned", "yes"} {
		t.Errorf("pinned row missing: %v", rows)
	}
}

func TestSkillDetails(t *testing.T) {
	tests := []struct {
		name     string
		node     systems.SkillNode
		requires []string
		want     [][2]string
	}{
		{
			name: "root skill",
			node: systems.SkillNode{Category: "Frontend", Level: 5, MaxLevel: 5, Unlocked: true},
			want: [][2]string{{"Category", "Frontend"}, {"Level", "5/5"}, {"Status", "unlocked"}, {"Requires", "none"}},
		},
		{
			name:     "locked with prerequisites",
			node:     systems.SkillNode{Category: "Frontend", Level: 1, MaxLevel: 5},
			requires: []string{"React", "Node.js"},
			want:     [][2]string{{"Category", "Frontend"}, {"Level", "1/5"}, {"Status", "locked"}, {"Requires", "React, Node.js"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := SkillDetails(tc.node, tc.requires)
			if len(rows) != len(tc.want) {
				t.Fatalf("rows = %v, want %v", rows, tc.want)
			}
			for i := range tc.want {
				if rows[i] != tc.want[i] {
					t.Errorf("row %d = %v, want %v", i, rows[i], tc.want[i])
				}
			}
		})
	}
}
