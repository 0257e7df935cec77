package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/maturekit/maturekit/internal/adapters/inbound/mcp"
	"github.com/maturekit/maturekit/internal/adapters/outbound/benchmark"
	"github.com/maturekit/maturekit/internal/adapters/outbound/profilestore"
	"github.com/maturekit/maturekit/internal/application"
	"github.com/maturekit/maturekit/internal/domain"
)

func testServerDeps(t *testing.T) (*application.AssessmentService, *domain.RubricCatalog) {
	t.Helper()
	cat := domain.DefaultCatalog()
	profiles := profilestore.New(t.TempDir())
	svc := application.NewAssessmentService(cat, profiles, benchmark.New("", profiles), nil)
	return svc, cat
}

func TestNewMatureKitMCPServer(t *testing.T) {
	svc, cat := testServerDeps(t)
	s := mcpadapter.NewMatureKitMCPServer(svc, cat)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	svc, cat := testServerDeps(t)
	s := mcpadapter.NewMatureKitMCPServer(svc, cat)
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"maturekit_assess",
		"maturekit_profile",
		"maturekit_update_score",
		"maturekit_domains",
		"maturekit_levels",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
