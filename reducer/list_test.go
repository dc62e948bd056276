package reducer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasreduce/internal/nodeutil"
	"github.com/erraggy/oasreduce/oaserrors"
)

func TestListEndpoints(t *testing.T) {
	doc := mustParseFile(t, "../testdata/imagebuilder.json")

	got, err := ListEndpoints(doc)
	require.NoError(t, err)
	assert.Equal(t, []Endpoint{
		{Method: "get", Path: "/blueprints"},
		{Method: "post", Path: "/blueprints"},
		{Method: "get", Path: "/clones/{id}"},
	}, got)
}

func TestListEndpoints_SkipsNonOperations(t *testing.T) {
	doc := mustParse(t, `{
  "paths": {
    "/a": {"summary": "x", "GET": {}, "post": "bad", "x-get": {}},
    "/b": "bad",
    "/c": {}
  }
}`)

	got, err := ListEndpoints(doc)
	require.NoError(t, err)
	assert.Equal(t, []Endpoint{{Path: "/a"}}, got)
}

func TestListEndpoints_SelectorsRoundTrip(t *testing.T) {
	doc := mustParse(t, `{
  "openapi": "3.0.0",
  "paths": {
    "/x": {"GET": {"operationId": "getX"}, "Put": {"operationId": "putX"}, "post": {"operationId": "postX"}},
    "/y": {"delete": {"operationId": "deleteY"}}
  }
}`)

	got, err := ListEndpoints(doc)
	require.NoError(t, err)
	assert.Equal(t, []Endpoint{
		{Path: "/x"},
		{Method: "post", Path: "/x"},
		{Method: "delete", Path: "/y"},
	}, got)

	for _, ep := range got {
		t.Run(ep.String(), func(t *testing.T) {
			reduced, err := Reduce(doc, []string{ep.String()})
			require.NoError(t, err)

			item := nodeutil.Lookup(nodeutil.Lookup(reduced, "paths"), ep.Path)
			require.NotNil(t, item, "listed selector %s dropped its path", ep)
			if ep.Method != "" {
				assert.True(t, nodeutil.Has(item, ep.Method))
				return
			}
			for _, method := range []string{"GET", "Put", "post"} {
				assert.True(t, nodeutil.Has(item, method), "missing %s", method)
			}
		})
	}
}

func TestListEndpoints_Errors(t *testing.T) {
	_, err := ListEndpoints(mustParse(t, `{"openapi":"3.0.0"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrValidation))

	got, err := ListEndpoints(mustParse(t, `{"paths":{}}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}
