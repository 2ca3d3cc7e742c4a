package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-pong/internal/storage"
)

type fakeHistory struct {
	matches []storage.MatchSummary
	points  []storage.PointEntry
	totals  storage.Totals
	err     error
}

func (f fakeHistory) RecentMatches(int) ([]storage.MatchSummary, error) { return f.matches, f.err }
func (f fakeHistory) RecentPoints(int) ([]storage.PointEntry, error) { return f.points, f.err }
func (f fakeHistory) Totals() (storage.Totals, error) { return f.totals, f.err }

func TestHistorySwitchesViews(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	store := fakeHistory{
		matches: []storage.MatchSummary{{ID: 7, Source: "play", StartedAt: at, Points: 3, LeftScore: 2, RightScore: 1, LongestHit: 9}},
		points:  []storage.PointEntry{{MatchID: 7, Scorer: "left", LeftScore: 2, RightScore: 1, Hits: 4, CreatedAt: at}},
		totals:  storage.Totals{Matches: 1, Points: 3, LeftWins: 2, RightWins: 1, MostHits: 9},
	}

	m := NewHistoryModel(store, 100, 30)
	if m.view != viewMatches {
		t.Fatalf("initial view = %v, expected matches", m.view)
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][3] != "2-1" {
		t.Errorf("match rows = %v, expected one row scoring 2-1", rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.view != viewPoints {
		t.Fatalf("view after tab = %v, expected points", m.view)
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][1] != "left" || rows[0][4] != "versus" {
		t.Errorf("point rows = %v, expected one versus point for left", rows)
	}

	view := m.View()
	if !strings.Contains(view, "1 matches  3 points") {
		t.Errorf("View() missing totals: %q", view)
	}
}

func TestHistoryEmptyAndErrors(t *testing.T) {
	m := NewHistoryModel(fakeHistory{err: errors.New("disk gone")}, 80, 24)

	view := m.View()
	if !strings.Contains(view, "No points logged yet.") {
		t.Error("View() does not show the empty message")
	}
	if !strings.Contains(view, "disk gone") {
		t.Error("View() does not show the load error")
	}
}

func TestHistoryQuit(t *testing.T) {
	m := NewHistoryModel(nil, 80, 24)

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if next.(HistoryModel).View() != "" {
		t.Error("View() after quit is not empty")
	}
}
