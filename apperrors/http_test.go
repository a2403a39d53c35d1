package apperrors

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"
)

func TestStatusForTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("op", "event", "bad input"), http.StatusBadRequest},
		{NotFound("op", "event", "123"), http.StatusNotFound},
		{Capacity("op", "table", "t1", "table is full"), http.StatusConflict},
		{AlreadyExists("op", "budget", "e1"), http.StatusConflict},
		{Persistence("op", "event", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Errorf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestStatusForLogsInternalFailures(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	StatusFor(Persistence("updateEvent", "event", errors.New("connection reset")))
	if !strings.Contains(buf.String(), "connection reset") {
		t.Errorf("persistence failure was not logged, got %q", buf.String())
	}

	// Client-fault errors are the caller's problem, not log noise.
	buf.Reset()
	StatusFor(Validation("op", "event", "bad input"))
	StatusFor(NotFound("op", "event", "123"))
	if buf.Len() != 0 {
		t.Errorf("client errors should not log, got %q", buf.String())
	}
}
