package ical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventease/internal/domain"
)

func withStatus(e domain.Event, participated bool) domain.EventWithStatus {
	return domain.EventWithStatus{Event: e, Participated: participated}
}

func TestExport(t *testing.T) {
	events := []domain.EventWithStatus{
		withStatus(domain.Event{
			ID:          "e1",
			Title:       "Pique-nique",
			Description: "Au parc",
			Date:        "2026-09-05T12:00:00Z",
			Location:    "Parc de la Tête d'Or",
		}, true),
		withStatus(domain.Event{ID: "e2", Title: "Concert", Date: "2026-09-10"}, false),
	}

	out, err := Export(events, "Mes événements")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "X-WR-CALNAME:Mes événements")
	assert.Contains(t, out, "UID:e1@eventease")
	assert.Contains(t, out, "UID:e2@eventease")
	assert.Contains(t, out, "SUMMARY:Pique-nique")
	assert.Contains(t, out, "DESCRIPTION:Au parc")
	assert.Contains(t, out, "LOCATION:Parc de la Tête d'Or")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExport_skips_unparseable_dates(t *testing.T) {
	events := []domain.EventWithStatus{
		withStatus(domain.Event{ID: "good", Title: "Good", Date: "2026-09-05"}, false),
		withStatus(domain.Event{ID: "bad", Title: "Bad", Date: "soon"}, false),
	}

	out, err := Export(events, "cal")
	require.NoError(t, err)
	assert.Contains(t, out, "UID:good@eventease")
	assert.NotContains(t, out, "UID:bad@eventease")
}

func TestExport_all_dates_unparseable(t *testing.T) {
	events := []domain.EventWithStatus{
		withStatus(domain.Event{ID: "bad", Title: "Bad", Date: "???"}, false),
	}
	_, err := Export(events, "cal")
	assert.Error(t, err)
}

func TestExport_empty_list(t *testing.T) {
	out, err := Export(nil, "cal")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestExportParticipations(t *testing.T) {
	events := []domain.EventWithStatus{
		withStatus(domain.Event{ID: "in", Title: "In", Date: "2026-09-05"}, true),
		withStatus(domain.Event{ID: "out", Title: "Out", Date: "2026-09-06"}, false),
	}

	out, err := ExportParticipations(events, "cal")
	require.NoError(t, err)
	assert.Contains(t, out, "UID:in@eventease")
	assert.NotContains(t, out, "UID:out@eventease")
}
