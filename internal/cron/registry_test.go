package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsOrderAndIndexesByName(t *testing.T) {
	retention := &stubJob{name: "outbox-retention"}
	carts := &stubJob{name: "cart-cleanup"}

	registry, err := NewRegistry(retention, nil, carts)
	require.NoError(t, err)

	assert.Equal(t, []string{"outbox-retention", "cart-cleanup"}, registry.Names())

	job, ok := registry.Lookup(" cart-cleanup ")
	require.True(t, ok)
	assert.Same(t, carts, job)

	_, ok = registry.Lookup("order-ttl")
	assert.False(t, ok)

	jobs := registry.Jobs()
	jobs[0] = nil
	assert.NotNil(t, registry.Jobs()[0], "Jobs must return a copy")
}

func TestRegistryRejectsDuplicateAndBlankNames(t *testing.T) {
	_, err := NewRegistry(&stubJob{name: "cart-cleanup"}, &stubJob{name: "cart-cleanup"})
	assert.ErrorContains(t, err, "registered twice")

	_, err = NewRegistry(&stubJob{name: "  "})
	assert.ErrorContains(t, err, "name is required")
}
