package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
)

func TestParseSession_CaseInsensitive(t *testing.T) {
	cases := map[string]entity.Session{
		"morning":   entity.SessionMorning,
		"Morning":   entity.SessionMorning,
		"MORNING":   entity.SessionMorning,
		" evening ": entity.SessionEvening,
		"EvEnInG":   entity.SessionEvening,
	}
	for in, want := range cases {
		got, err := entity.ParseSession(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseSession_Invalida(t *testing.T) {
	for _, in := range []string{"", "noon", "mañana", "morning1"} {
		_, err := entity.ParseSession(in)
		assert.ErrorIs(t, err, domain.ErrInvalidSession, in)
	}
}

func TestSession_OrderYLabel(t *testing.T) {
	assert.Equal(t, 0, entity.SessionMorning.Order())
	assert.Equal(t, 1, entity.SessionEvening.Order())
	assert.Equal(t, -1, entity.Session("Morning").Order())
	assert.Equal(t, "Evening", entity.SessionEvening.Label())
}
