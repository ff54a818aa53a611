package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kilianp07/eventplan/core/model"
)

func TestCommandEventResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ResultOK},
		{&model.ValidationError{}, ResultValidation},
		{fmt.Errorf("append: %w", &model.OverlapError{SessionID: "a", ConflictingID: "b"}), ResultOverlap},
		{&model.DuplicateNameError{Catalog: model.CatalogLocation, Name: "Hall"}, ResultDuplicateName},
		{&model.DuplicateIDError{Kind: "session", ID: "s1"}, ResultDuplicateID},
		{&model.NotFoundError{Kind: "session", ID: "x"}, ResultNotFound},
		{model.ErrInvalidDuration, ResultInvalidDuration},
		{errors.New("disk full"), ResultError},
	}
	for _, c := range cases {
		if got := (CommandEvent{Err: c.err}).Result(); got != c.want {
			t.Errorf("%v: expected %s got %s", c.err, c.want, got)
		}
	}
}

func TestStatsOf(t *testing.T) {
	p := model.Project{
		Sessions:  make([]model.Session, 3),
		Locations: make([]model.Location, 2),
		Staff:     make([]model.Owner, 1),
	}
	st := StatsOf(p)
	if st.Sessions != 3 || st.Locations != 2 || st.Staff != 1 || st.TaskTypes != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
