package httpapi

import (
	"net/http"
	"testing"

	"uav-roster/internal/application/view"
	"uav-roster/internal/domain/member"
)

func TestViewHandler_Ranking(t *testing.T) {
	server, _ := newTestServer(t, Options{}, seedMembers()...)
	w := doRequest(server.Handler(), http.MethodGet, "/api/ranking", "", "")
	var resp struct {
		Items []view.RankedMember `json:"items"`
		Total int                 `json:"total"`
	}
	decode(t, w, &resp)
	if resp.Total != 3 || resp.Items[0].Member.Name != "Bob" || resp.Items[0].Rank != 1 || resp.Items[2].Member.Name != "Carol" {
		t.Errorf("unexpected ranking %+v", resp.Items)
	}

	w = doRequest(server.Handler(), http.MethodGet, "/api/ranking?q=AL", "", "")
	decode(t, w, &resp)
	if resp.Total != 1 || resp.Items[0].Member.ID != "m-1" || resp.Items[0].Rank != 1 {
		t.Errorf("unexpected filtered ranking %+v", resp.Items)
	}
}

func TestViewHandler_Dashboard(t *testing.T) {
	seed := seedMembers()
	seed[1].CurrentTask.Deadline = member.MustParseDate("2000-01-01")
	server, _ := newTestServer(t, Options{}, seed...)

	w := doRequest(server.Handler(), http.MethodGet, "/api/dashboard", "", "")
	var resp struct {
		Today string              `json:"today"`
		Items []view.DashboardRow `json:"items"`
	}
	decode(t, w, &resp)
	if len(resp.Items) != 3 || resp.Today == "" {
		t.Fatalf("unexpected dashboard %+v", resp)
	}
	for i, row := range resp.Items {
		if row.Member.ID != seed[i].ID {
			t.Errorf("row %d: expected %s, got %s", i, seed[i].ID, row.Member.ID)
		}
		if row.Overdue != (i == 1) {
			t.Errorf("row %d: unexpected overdue flag %v", i, row.Overdue)
		}
	}
}
