package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/csesa/portal-client/internal/model"
)

func TestEventsDecoding(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `[
			{"id": 1, "name": "Hackathon", "date": "2025-03-10", "location": "Main Hall", "tags": ["tech"]},
			{"id": 2, "name": "Orientation", "date": "2025-08-01"}
		]`)
	}))
	if err := st.SaveTokens("A1", "R1"); err != nil {
		t.Fatal(err)
	}

	events, err := c.Events(context.Background())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Name != "Hackathon" || events[0].Location != "Main Hall" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].ID != 2 || events[1].Tags != nil {
		t.Errorf("second event = %+v", events[1])
	}
}

func TestEventByIDPath(t *testing.T) {
	var gotPath string
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"id": 7, "name": "AGM", "date": "2025-09-01"}`)
	}))
	if err := st.SaveTokens("A1", "R1"); err != nil {
		t.Fatal(err)
	}

	event, err := c.EventByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("EventByID: %v", err)
	}
	if gotPath != "/events/7/" {
		t.Errorf("path = %q", gotPath)
	}
	if event.Name != "AGM" {
		t.Errorf("event = %+v", event)
	}
}

func TestProjectsDecoding(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "name": "Portal", "description_short": "The member portal",
			 "tech_stack": ["go"], "status": "active"}
		]`)
	}))
	if err := st.SaveTokens("A1", "R1"); err != nil {
		t.Fatal(err)
	}

	projects, err := c.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects", len(projects))
	}
	p := projects[0]
	if p.Name != "Portal" || p.DescriptionShort != "The member portal" || p.Status != "active" {
		t.Errorf("project = %+v", p)
	}
}

// The backend has sent roles both as names and as numeric codes; both must
// land on the same enum.
func TestMembersRoleDecoding(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/list/" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `[
			{"id": "1", "email": "p@x.com", "name": "P", "role": "President"},
			{"id": "2", "email": "c@x.com", "name": "C", "role": 3},
			{"id": "3", "email": "a@x.com", "name": "A", "role": "associate"},
			{"id": "4", "email": "n@x.com", "name": "N"}
		]`)
	}))
	if err := st.SaveTokens("A1", "R1"); err != nil {
		t.Fatal(err)
	}

	members, err := c.Members(context.Background())
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	want := []model.Role{model.RolePresident, model.RoleCoordinator, model.RoleMember, model.RoleUnknown}
	if len(members) != len(want) {
		t.Fatalf("got %d members", len(members))
	}
	for i, m := range members {
		if m.Role != want[i] {
			t.Errorf("member %s: role = %v, want %v", m.Email, m.Role, want[i])
		}
	}
}

func TestUpdateProfileSendsPartialPatch(t *testing.T) {
	var gotMethod string
	var gotBody map[string]json.RawMessage
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		io.WriteString(w, `{"id": "1", "email": "a@x.com", "name": "A", "batch": "2026"}`)
	}))
	if err := st.SaveTokens("A1", "R1"); err != nil {
		t.Fatal(err)
	}

	batch := "2026"
	u, err := c.UpdateProfile(context.Background(), model.ProfileUpdate{Batch: &batch})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q", gotMethod)
	}
	if string(gotBody["batch"]) != `"2026"` {
		t.Errorf("batch in body = %s", gotBody["batch"])
	}
	// Untouched fields stay out of the request entirely.
	if _, ok := gotBody["skills"]; ok {
		t.Error("unset skills field was sent")
	}
	if _, ok := gotBody["name"]; ok {
		t.Error("unset name field was sent")
	}
	if u.Batch != "2026" {
		t.Errorf("user = %+v", u)
	}
}
