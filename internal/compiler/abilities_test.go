package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAbilities(t *testing.T) {
	cfg := testConfig(t, 1025)
	api := newStubFetcher()
	api.responses[cfg.API.BaseURL+"/ability/static"] = `{
		"name": "static",
		"names": [
			{"language": {"name": "en"}, "name": "Static"},
			{"language": {"name": "zh-Hans"}, "name": "静电"}
		]
	}`
	api.responses[cfg.API.BaseURL+"/ability/overgrow"] = `{
		"name": "overgrow",
		"names": [{"language": {"name": "zh-Hant"}, "name": "茂盛"}]
	}`
	// "levitate" is unavailable this run.

	p := New(cfg, api)
	out, err := p.FetchAbilities(context.Background(), []string{"static", "overgrow", "levitate"})
	require.NoError(t, err)

	assert.Equal(t, "静电", out["static"])
	assert.Equal(t, "茂盛", out["overgrow"], "traditional name is the fallback")
	assert.Equal(t, "levitate", out["levitate"], "untranslatable slugs map to themselves")
}

func TestFetchAbilitiesResumes(t *testing.T) {
	cfg := testConfig(t, 1025)
	api := newStubFetcher()
	api.responses[cfg.API.BaseURL+"/ability/static"] = `{
		"name": "static",
		"names": [{"language": {"name": "zh-Hans"}, "name": "静电"}]
	}`

	p := New(cfg, api)
	_, err := p.FetchAbilities(context.Background(), []string{"static"})
	require.NoError(t, err)
	require.Equal(t, 1, api.calls[cfg.API.BaseURL+"/ability/static"])

	out, err := p.FetchAbilities(context.Background(), []string{"static"})
	require.NoError(t, err)
	assert.Equal(t, "静电", out["static"])
	assert.Equal(t, 1, api.calls[cfg.API.BaseURL+"/ability/static"])
}
