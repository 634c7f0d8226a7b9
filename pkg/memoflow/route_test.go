package memoflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutesRouter(t *testing.T) {
	routes := NewRoutes("generic",
		Route[State]{When: func(s State) bool { return s.Done }, To: "assemble"},
		Route[State]{When: func(s State) bool { return s.Quick }, To: "quick"},
	)
	router := routes.Router()

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"first match", State{Done: true}, "assemble"},
		{"first shadows second", State{Done: true, Quick: true}, "assemble"},
		{"second match", State{Quick: true}, "quick"},
		{"default", State{}, "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router(nil, tt.state))
		})
	}
}

func TestRoutesTargets(t *testing.T) {
	routes := NewRoutes("generic",
		Route[State]{When: func(State) bool { return true }, To: "a"},
		Route[State]{When: func(State) bool { return true }, To: "b"},
	)

	assert.Equal(t, []string{"a", "b", "generic"}, routes.Targets())
}

func TestRoutesEmptyTableIsDefaultOnly(t *testing.T) {
	routes := NewRoutes[State](END)

	assert.Equal(t, END, routes.Router()(nil, State{}))
	assert.Equal(t, []string{END}, routes.Targets())
}
