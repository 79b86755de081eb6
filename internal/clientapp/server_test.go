package clientapp

import (
	"net/url"
	"testing"
)

func TestBuildAPIQueryFirstVisitLeavesFiltersUnset(t *testing.T) {
	query := url.Values{"user": {"100200"}}
	api := buildAPIQuery(query)

	if api.Has("ids") || api.Has("units") || api.Has("depts") {
		t.Fatalf("first visit must not restrict anything: %v", api)
	}
}

func TestBuildAPIQueryAppliedEmptySelection(t *testing.T) {
	query := url.Values{"user": {"100200"}, "applied": {"1"}}
	api := buildAPIQuery(query)

	if !api.Has("ids") || api.Get("ids") != "" {
		t.Fatalf("cleared checkboxes must become an explicit empty selection: %v", api)
	}
	if api.Has("units") || api.Has("depts") {
		t.Fatalf("empty unit/department selections stay unrestricted: %v", api)
	}
}

func TestBuildAPIQueryJoinsRepeatedParams(t *testing.T) {
	query := url.Values{
		"applied": {"1"},
		"ids":     {"000101", "000102"},
		"units":   {"Unit A"},
		"pivot":   {"Dept Name"},
	}
	api := buildAPIQuery(query)

	if api.Get("ids") != "000101,000102" {
		t.Fatalf("ids = %q", api.Get("ids"))
	}
	if api.Get("units") != "Unit A" || api.Get("pivot") != "Dept Name" {
		t.Fatalf("query = %v", api)
	}
}

func TestSelectableDefaultsToAllSelected(t *testing.T) {
	values := selectable([]string{"a", "b"}, nil, false)
	for _, v := range values {
		if !v.Selected {
			t.Fatalf("%q should default to selected", v.Value)
		}
	}
}

func TestSelectableHonorsAppliedChoices(t *testing.T) {
	values := selectable([]string{"a", "b"}, []string{"b"}, true)
	if values[0].Selected || !values[1].Selected {
		t.Fatalf("selection not honored: %+v", values)
	}
}

func TestTemplatesParse(t *testing.T) {
	if _, err := contentFS.ReadFile("assets/app.css"); err != nil {
		t.Fatalf("stylesheet missing from embed: %v", err)
	}
}
