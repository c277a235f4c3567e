package hospital

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/db"
	"github.com/ambulance/ambulance/pkg/pagination"
)

func filterFromQuery(t *testing.T, query string) (Filter, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/hospitals/search/filters?"+query, nil)
	return FilterFromContext(echo.New().NewContext(req, httptest.NewRecorder()))
}

func TestFilterFromContext(t *testing.T) {
	f, err := filterFromQuery(t, "type=General&emergency=true&maxDistance=5&minRating=4.5&specialty=Cardiology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Type != "General" || f.Specialty != "Cardiology" {
		t.Errorf("unexpected string filters: %+v", f)
	}
	if f.Emergency == nil || !*f.Emergency {
		t.Error("expected emergency=true")
	}
	if f.MaxDistance == nil || *f.MaxDistance != 5 {
		t.Error("expected maxDistance=5")
	}
	if f.MinRating == nil || *f.MinRating != 4.5 {
		t.Error("expected minRating=4.5")
	}
}

func TestFilterFromContext_Empty(t *testing.T) {
	f, err := filterFromQuery(t, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Emergency != nil || f.MaxDistance != nil || f.MinRating != nil || f.Type != "" || f.Specialty != "" {
		t.Errorf("expected zero filter, got %+v", f)
	}
}

func TestFilterFromContext_Malformed(t *testing.T) {
	_, err := filterFromQuery(t, "emergency=maybe&maxDistance=far&minRating=9")
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"emergency", "maxDistance", "minRating"} {
		if _, ok := ae.Fields[f]; !ok {
			t.Errorf("expected field error for %s, got %v", f, ae.Fields)
		}
	}
}

func TestFilter_Apply(t *testing.T) {
	emergency := false
	minRating := 4.5
	q := db.NewQuery("hospitals", "id")
	Filter{Type: "Clinic", Emergency: &emergency, MinRating: &minRating, Specialty: "Pediatrics"}.Apply(q)

	want := "SELECT id FROM hospitals WHERE type = $1 AND emergency = $2 AND rating >= $3 AND $4 = ANY(specialties)"
	if got := q.SQL(pagination.All); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if len(q.Args()) != 4 {
		t.Errorf("expected 4 args, got %v", q.Args())
	}
}

func TestFilter_ApplyEmpty(t *testing.T) {
	q := db.NewQuery("hospitals", "id")
	Filter{}.Apply(q)
	if got := q.SQL(pagination.All); got != "SELECT id FROM hospitals" {
		t.Errorf("expected no WHERE clause, got %q", got)
	}
}

func TestFilter_Matches(t *testing.T) {
	h := &Hospital{Type: "General", Emergency: true, Distance: 3, Rating: 4.5, Specialties: []string{"Trauma"}}
	yes, no := true, false
	near, far := 2.0, 10.0

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, true},
		{"type match", Filter{Type: "General"}, true},
		{"type mismatch", Filter{Type: "Clinic"}, false},
		{"emergency match", Filter{Emergency: &yes}, true},
		{"emergency mismatch", Filter{Emergency: &no}, false},
		{"within distance", Filter{MaxDistance: &far}, true},
		{"too far", Filter{MaxDistance: &near}, false},
		{"specialty present", Filter{Specialty: "Trauma"}, true},
		{"specialty absent", Filter{Specialty: "Oncology"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(h); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
