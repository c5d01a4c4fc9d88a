// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package clock

import (
	"context"
	"testing"

	"github.com/DeltaResero/IceWMCP/internal/timedate"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
)

type fakeTimedate struct {
	status  timedate.Status
	applied []timedate.Changeset
	err     error
}

func (f *fakeTimedate) Status(context.Context) (timedate.Status, error) {
	return f.status, f.err
}

func (f *fakeTimedate) Apply(_ context.Context, ch timedate.Changeset) error {
	f.applied = append(f.applied, ch)
	return f.err
}

func testApp(td timedate.Client) *app {
	a := &app{
		BaseApp: panel.NewBaseApp("Date & Time"),
		host:    nopHost{},
		td:      td,
	}
	a.tabs = &widgets.Tabs{Titles: []string{"Time & Date", "Time Zone", "Options"}}
	a.clockLine = &widgets.Label{}
	a.ntp = &widgets.Checkbox{}
	a.dateEntry = &widgets.Entry{}
	a.timeEntry = &widgets.Entry{}
	a.timeMsg = &widgets.Label{}
	a.filter = &widgets.Entry{}
	a.zoneTable = &widgets.Table{Columns: []widgets.Column{{Title: "Zone", Width: 48}}}
	a.zoneMsg = &widgets.Label{}
	a.fmt24 = &widgets.Checkbox{Checked: true}
	a.showSec = &widgets.Checkbox{Checked: true}
	a.optMsg = &widgets.Label{}
	return a
}

func TestApplyTimeWithNTP(t *testing.T) {
	td := &fakeTimedate{}
	a := testApp(td)
	a.ntp.Checked = true

	a.applyTime()

	if len(td.applied) != 1 {
		t.Fatalf("expected one changeset, got %d", len(td.applied))
	}
	ch := td.applied[0]
	if ch.NTP == nil || !*ch.NTP {
		t.Error("expected NTP enabled")
	}
	if ch.Time != nil {
		t.Error("no manual time expected with NTP on")
	}
}

func TestApplyTimeManual(t *testing.T) {
	td := &fakeTimedate{}
	a := testApp(td)
	a.ntp.Checked = false
	a.dateEntry.SetValue("2025-08-31")
	a.timeEntry.SetValue("14:30:00")

	a.applyTime()

	if len(td.applied) != 1 {
		t.Fatalf("expected one changeset, got %d", len(td.applied))
	}
	ch := td.applied[0]
	if ch.Time == nil {
		t.Fatal("expected a manual time")
	}
	if got := ch.Time.Format("2006-01-02 15:04:05"); got != "2025-08-31 14:30:00" {
		t.Errorf("got %q", got)
	}
}

func TestApplyTimeNoChangeDoesNotApply(t *testing.T) {
	td := &fakeTimedate{}
	a := testApp(td)
	a.ntp.Checked = true
	a.lastNTP = true

	a.applyTime()

	if len(td.applied) != 0 {
		t.Errorf("unchanged state must not be applied, got %v", td.applied)
	}
}

func TestApplyTimeRejectsBadInput(t *testing.T) {
	td := &fakeTimedate{}
	a := testApp(td)
	a.ntp.Checked = false
	a.dateEntry.SetValue("31/08/2025")
	a.timeEntry.SetValue("2pm")

	a.applyTime()

	if len(td.applied) != 0 {
		t.Errorf("bad input must not be applied, got %v", td.applied)
	}
}

func TestApplyFilterMarksCurrentZone(t *testing.T) {
	a := testApp(&fakeTimedate{})
	a.zones = []string{"Europe/Berlin", "Europe/London", "UTC"}
	a.current = "Europe/London"

	a.applyFilter()

	if len(a.visible) != 3 {
		t.Fatalf("expected 3 visible zones, got %d", len(a.visible))
	}
	if a.zoneTable.Selected != 1 {
		t.Errorf("current zone must be preselected, got %d", a.zoneTable.Selected)
	}
	if a.zoneTable.Rows[1][0] != "Europe/London  (current)" {
		t.Errorf("got %q", a.zoneTable.Rows[1][0])
	}

	a.filter.SetValue("berlin")
	a.applyFilter()
	if len(a.visible) != 1 || a.visible[0] != "Europe/Berlin" {
		t.Errorf("filter failed: %v", a.visible)
	}
}

func TestApplyZoneSendsTimezone(t *testing.T) {
	td := &fakeTimedate{}
	a := testApp(td)
	a.zones = []string{"Europe/Berlin", "UTC"}
	a.applyFilter()
	a.zoneTable.Selected = 1

	a.applyZone()

	if len(td.applied) != 1 || td.applied[0].Timezone != "UTC" {
		t.Fatalf("got %v", td.applied)
	}
	if a.current != "UTC" {
		t.Errorf("current = %q", a.current)
	}
}

func TestClockFormatCoversOptions(t *testing.T) {
	a := testApp(&fakeTimedate{})

	a.fmt24.Checked = false
	a.showSec.Checked = true
	if got := a.clockFormat(); got != "Mon 2006-01-02 03:04:05 PM MST" {
		t.Errorf("12h with seconds = %q", got)
	}

	a.showSec.Checked = false
	if got := a.clockFormat(); got != "Mon 2006-01-02 03:04 PM MST" {
		t.Errorf("12h without seconds = %q", got)
	}

	a.fmt24.Checked = true
	a.showSec.Checked = true
	if got := a.clockFormat(); got != "Mon 2006-01-02 15:04:05 MST" {
		t.Errorf("24h with seconds = %q", got)
	}
}

func TestSyncNTPTogglesManualFields(t *testing.T) {
	a := testApp(&fakeTimedate{})
	a.ntp.Checked = true
	a.syncNTP()
	if !a.dateEntry.Disabled || !a.timeEntry.Disabled {
		t.Error("manual fields must be disabled with NTP on")
	}
	a.ntp.Checked = false
	a.syncNTP()
	if a.dateEntry.Disabled || a.timeEntry.Disabled {
		t.Error("manual fields must be enabled with NTP off")
	}
	if a.dateEntry.Value == "" || a.timeEntry.Value == "" {
		t.Error("manual fields must be seeded with the current time")
	}
}

type nopHost struct{}

func (nopHost) ShowInfo(string, string)            {}
func (nopHost) ShowWarning(string, string)         {}
func (nopHost) ShowError(string, string)           {}
func (nopHost) Confirm(string, string, func(bool)) {}
func (nopHost) OpenApp(panel.App)                  {}
func (nopHost) CloseApp()                          {}
func (nopHost) Beep()                              {}
func (nopHost) Quit()                              {}
